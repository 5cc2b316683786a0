package writer

import (
	"io"

	"github.com/hatlonely/dbx/ref"
	"github.com/pkg/errors"
)

func init() {
	ref.MustRegisterT[*ConsoleWriter](NewConsoleWriterWithOptions)
	ref.MustRegisterT[*FileWriter](NewFileWriterWithOptions)
}

// Writer 日志输出目标
type Writer interface {
	io.Writer
	io.Closer
}

// NewWriterWithOptions options 为空或者没有 Type 时输出到 stderr
func NewWriterWithOptions(options *ref.TypeOptions) (Writer, error) {
	if options == nil || options.Type == "" {
		return NewConsoleWriterWithOptions(nil)
	}

	opts := *options
	if opts.Namespace == "" {
		opts.Namespace = "github.com/hatlonely/dbx/log/writer"
	}
	w, err := ref.NewWithTypeOptions[Writer](&opts)
	if err != nil {
		return nil, errors.WithMessage(err, "failed to create writer")
	}
	return w, nil
}
