package logger

import (
	"context"
	"log/slog"
)

// Logger 结构化日志，args 为交替出现的 key 和 value
//
// 驱动和序列生成器只依赖这个接口，可以通过 ref 替换成任意实现
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	// Enabled 级别被过滤时返回 false，调用方可以跳过字段的计算
	Enabled(ctx context.Context, level slog.Level) bool

	// With 返回附加了固定字段的日志，例如 dialect=h2
	With(args ...any) Logger
	WithGroup(name string) Logger
}

