package log

import (
	"sync/atomic"

	"github.com/hatlonely/dbx/log/logger"
	"github.com/hatlonely/dbx/ref"
	"github.com/pkg/errors"
)

func init() {
	ref.MustRegisterT[*logger.SLog](logger.NewSLogWithOptions)

	// 默认向 stderr 输出 text 格式日志，stdout 留给生成的脚本
	slog, err := logger.NewSLogWithOptions(&logger.SLogOptions{
		Level:  "info",
		Format: "text",
	})
	if err != nil {
		panic("failed to initialize default logger: " + err.Error())
	}
	defaultLogger.Store(&holder{logger: slog})
}

type holder struct {
	logger logger.Logger
}

var defaultLogger atomic.Pointer[holder]

func Default() logger.Logger {
	return defaultLogger.Load().logger
}

// SetDefault 替换默认日志，nil 会被忽略
func SetDefault(l logger.Logger) {
	if l == nil {
		return
	}
	defaultLogger.Store(&holder{logger: l})
}

// NewLoggerWithOptions 根据配置创建日志，Namespace 为空时使用 logger 包，Type 为空时使用 SLog
func NewLoggerWithOptions(options *ref.TypeOptions) (logger.Logger, error) {
	if options == nil {
		return Default(), nil
	}

	opts := *options
	if opts.Namespace == "" {
		opts.Namespace = "github.com/hatlonely/dbx/log/logger"
	}
	if opts.Type == "" {
		opts.Type = "SLog"
	}
	if opts.Options == nil {
		opts.Options = &logger.SLogOptions{}
	}

	l, err := ref.NewWithTypeOptions[logger.Logger](&opts)
	if err != nil {
		return nil, errors.WithMessage(err, "create logger failed")
	}
	return l, nil
}
