package dialect

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ddlStatements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbx_ddl_statements_total",
			Help: "Total number of generated DDL statements",
		},
		[]string{"dialect", "command", "object"},
	)
	phraseFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbx_phrase_fallback_total",
			Help: "Total number of undefined SQL phrases replaced by the fallback placeholder",
		},
		[]string{"dialect"},
	)
)

func init() {
	prometheus.MustRegister(ddlStatements, phraseFallbacks)
}
