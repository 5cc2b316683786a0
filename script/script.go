package script

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"github.com/hatlonely/dbx/log"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Script 有序的 SQL 语句，每条语句可以单独执行
type Script struct {
	stmts []string
}

func New(stmts ...string) *Script {
	return &Script{stmts: append([]string(nil), stmts...)}
}

func (s *Script) Add(stmt string) {
	s.stmts = append(s.stmts, stmt)
}

// Append 把 other 中的语句追加到末尾
func (s *Script) Append(other *Script) {
	if other == nil {
		return
	}
	s.stmts = append(s.stmts, other.stmts...)
}

func (s *Script) Statements() []string {
	return s.stmts
}

func (s *Script) Statement(i int) string {
	return s.stmts[i]
}

func (s *Script) Len() int {
	return len(s.stmts)
}

func (s *Script) Clear() {
	s.stmts = nil
}

// String 语句之间用分号和空行分隔，可以直接保存为 .sql 文件
func (s *Script) String() string {
	if len(s.stmts) == 0 {
		return ""
	}
	return strings.Join(s.stmts, ";\n\n") + ";\n"
}

// Executor *sql.DB, *sql.Tx, *sql.Conn 都满足
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var tracer = otel.Tracer("github.com/hatlonely/dbx/script")

// Run 依次执行所有语句，遇到第一个错误停止，返回成功执行的语句数
func (s *Script) Run(ctx context.Context, exec Executor) (int, error) {
	ctx, span := tracer.Start(ctx, "script.Run", trace.WithAttributes(
		attribute.Int("statements", len(s.stmts)),
	))
	defer span.End()

	start := time.Now()
	for i, stmt := range s.stmts {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return i, errors.Wrap(err, "script cancelled")
		}
		if _, err := exec.ExecContext(ctx, stmt); err != nil {
			log.Default().ErrorContext(ctx, "execute statement failed", "index", i, "statement", stmt, "error", err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return i, errors.Wrapf(err, "execute statement %d failed", i)
		}
	}

	if l := log.Default(); l.Enabled(ctx, slog.LevelDebug) {
		l.DebugContext(ctx, "script executed", "statements", len(s.stmts), "duration", time.Since(start))
	}
	span.SetStatus(codes.Ok, "")
	return len(s.stmts), nil
}
