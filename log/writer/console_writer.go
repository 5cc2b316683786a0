package writer

import (
	"io"
	"os"
)

// ConsoleWriterOptions 控制台输出配置
type ConsoleWriterOptions struct {
	// 输出目标：stdout, stderr
	Target string `cfg:"target" def:"stderr" validate:"omitempty,oneof=stdout stderr"`
}

// ConsoleWriter 控制台输出器
type ConsoleWriter struct {
	writer io.Writer
	target string
}

// NewConsoleWriterWithOptions 创建控制台输出器，默认输出到 stderr，避免和脚本输出混在一起
func NewConsoleWriterWithOptions(options *ConsoleWriterOptions) (*ConsoleWriter, error) {
	if options == nil {
		options = &ConsoleWriterOptions{Target: "stderr"}
	}

	switch options.Target {
	case "stdout":
		return &ConsoleWriter{writer: os.Stdout, target: "stdout"}, nil
	default:
		return &ConsoleWriter{writer: os.Stderr, target: "stderr"}, nil
	}
}

// Target 返回实际的输出目标
func (c *ConsoleWriter) Target() string {
	return c.target
}

func (c *ConsoleWriter) Write(p []byte) (n int, err error) {
	return c.writer.Write(p)
}

// Close 控制台不需要关闭
func (c *ConsoleWriter) Close() error {
	return nil
}
