package sequence

import (
	"context"
	"log/slog"
	"time"

	"github.com/hatlonely/dbx/log"
	"github.com/hatlonely/dbx/log/logger"
	"github.com/hatlonely/dbx/ref"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ObservableOptions struct {
	// Generator 被包装的生成器
	Generator *ref.TypeOptions `cfg:"generator" validate:"required"`

	Logger *ref.TypeOptions `cfg:"logger"`

	EnableMetrics bool `cfg:"enableMetrics" def:"true"`
	EnableLogging bool `cfg:"enableLogging" def:"true"`
	EnableTracing bool `cfg:"enableTracing" def:"false"`

	// Name 指标名前缀，日志和 span 的 component
	Name string `cfg:"name" def:"dbx_sequence"`
}

type observableMetrics struct {
	nextCounter  *prometheus.CounterVec
	nextDuration *prometheus.HistogramVec
}

// newObservableMetrics 同名指标已经注册时复用已有的 collector
func newObservableMetrics(name string) (*observableMetrics, error) {
	counter, err := register(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name + "_next_total",
			Help: "Total number of sequence value requests",
		},
		[]string{"sequence", "status"},
	))
	if err != nil {
		return nil, err
	}
	duration, err := register(prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name + "_next_duration_seconds",
			Help:    "Duration of sequence value requests in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"sequence"},
	))
	if err != nil {
		return nil, err
	}
	return &observableMetrics{nextCounter: counter, nextDuration: duration}, nil
}

func register[C prometheus.Collector](c C) (C, error) {
	if err := prometheus.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errors.Wrap(err, "register metrics failed")
	}
	return c, nil
}

// ObservableGenerator 为任何 Generator 添加日志、指标和追踪
type ObservableGenerator struct {
	generator Generator

	logger  logger.Logger
	metrics *observableMetrics
	tracer  trace.Tracer
	name    string
}

func NewObservableGeneratorWithOptions(options *ObservableOptions) (*ObservableGenerator, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	generator, err := NewGeneratorWithOptions(options.Generator)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create underlying generator")
	}
	return NewObservableGenerator(generator, options)
}

// NewObservableGenerator 包装已经创建好的生成器，忽略 options.Generator
func NewObservableGenerator(generator Generator, options *ObservableOptions) (*ObservableGenerator, error) {
	if generator == nil {
		return nil, errors.New("generator is nil")
	}
	if options == nil {
		options = &ObservableOptions{EnableMetrics: true, EnableLogging: true}
	}
	name := options.Name
	if name == "" {
		name = "dbx_sequence"
	}

	obs := &ObservableGenerator{generator: generator, name: name}

	if options.EnableLogging {
		l, err := log.NewLoggerWithOptions(options.Logger)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create logger")
		}
		obs.logger = l.WithGroup("sequence")
	}
	if options.EnableMetrics {
		metrics, err := newObservableMetrics(name)
		if err != nil {
			return nil, err
		}
		obs.metrics = metrics
	}
	if options.EnableTracing {
		obs.tracer = otel.Tracer("github.com/hatlonely/dbx/sequence")
	}
	return obs, nil
}

func (obs *ObservableGenerator) Next(ctx context.Context, name string, minValue int64) (int64, error) {
	start := time.Now()

	var span trace.Span
	if obs.tracer != nil {
		ctx, span = obs.tracer.Start(ctx, "sequence.Next", trace.WithAttributes(
			attribute.String("component", obs.name),
			attribute.String("sequence", name),
		))
		defer span.End()
	}

	value, err := obs.generator.Next(ctx, name, minValue)
	duration := time.Since(start)

	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.Int64("value", value))
			span.SetStatus(codes.Ok, "")
		}
	}

	if obs.metrics != nil {
		status := "success"
		if err != nil {
			status = "error"
		}
		obs.metrics.nextCounter.WithLabelValues(name, status).Inc()
		obs.metrics.nextDuration.WithLabelValues(name).Observe(duration.Seconds())
	}

	if obs.logger != nil {
		if err != nil {
			obs.logger.ErrorContext(ctx, "next sequence value failed", "component", obs.name, "sequence", name, "duration", duration, "error", err)
		} else if obs.logger.Enabled(ctx, slog.LevelDebug) {
			obs.logger.DebugContext(ctx, "next sequence value", "component", obs.name, "sequence", name, "value", value, "duration", duration)
		}
	}

	return value, err
}

// Close 关闭底层生成器
func (obs *ObservableGenerator) Close() error {
	if c, ok := obs.generator.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
