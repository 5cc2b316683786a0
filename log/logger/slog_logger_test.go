package logger

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hatlonely/dbx/log/writer"
	"github.com/hatlonely/dbx/ref"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	ref.MustRegister("test.logger", "FileWriter", writer.NewFileWriterWithOptions)
}

func TestNewSLogWithOptions(t *testing.T) {
	Convey("创建 SLog", t, func() {
		Convey("nil 配置", func() {
			_, err := NewSLogWithOptions(nil)
			So(err, ShouldNotBeNil)
		})

		Convey("非法级别", func() {
			_, err := NewSLogWithOptions(&SLogOptions{Level: "trace"})
			So(err, ShouldNotBeNil)
		})

		Convey("非法格式", func() {
			_, err := NewSLogWithOptions(&SLogOptions{Format: "xml"})
			So(err, ShouldNotBeNil)
		})

		Convey("默认输出到控制台", func() {
			l, err := NewSLogWithOptions(&SLogOptions{})
			So(err, ShouldBeNil)
			So(l.Close(), ShouldBeNil)
		})
	})
}

func TestSLogOutput(t *testing.T) {
	Convey("日志内容", t, func() {
		path := filepath.Join(t.TempDir(), "out.log")
		l, err := NewSLogWithOptions(&SLogOptions{
			Level:      "debug",
			Format:     "json",
			TimeFormat: "2006-01-02",
			Fields:     map[string]any{"module": "dbx"},
			Output: &ref.TypeOptions{
				Namespace: "test.logger",
				Type:      "FileWriter",
				Options:   &writer.FileWriterOptions{Path: path},
			},
		})
		So(err, ShouldBeNil)

		ctx := context.Background()
		l.Debug("debug message")
		l.InfoContext(ctx, "info message", "table", "Users")
		l.WithGroup("ddl").With("dialect", "h2").Warn("skipped column", "column", "tags")
		l.ErrorContext(ctx, "error message")
		So(l.Close(), ShouldBeNil)

		data, err := os.ReadFile(path)
		So(err, ShouldBeNil)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		So(len(lines), ShouldEqual, 4)
		So(lines[0], ShouldContainSubstring, `"module":"dbx"`)
		So(lines[1], ShouldContainSubstring, `"table":"Users"`)
		So(lines[2], ShouldContainSubstring, `"ddl":{"dialect":"h2","column":"tags"}`)
		So(lines[3], ShouldContainSubstring, `"level":"ERROR"`)
	})
}

func TestSLogEnabled(t *testing.T) {
	Convey("按级别过滤", t, func() {
		ctx := context.Background()
		l, err := NewSLogWithOptions(&SLogOptions{Level: "warn"})
		So(err, ShouldBeNil)

		So(l.Enabled(ctx, slog.LevelDebug), ShouldBeFalse)
		So(l.Enabled(ctx, slog.LevelInfo), ShouldBeFalse)
		So(l.Enabled(ctx, slog.LevelWarn), ShouldBeTrue)
		So(l.With("dialect", "h2").Enabled(ctx, slog.LevelError), ShouldBeTrue)
		So(l.WithGroup("ddl").Enabled(ctx, slog.LevelDebug), ShouldBeFalse)

		var _ Logger = l
	})
}

func TestParseLevel(t *testing.T) {
	Convey("解析日志级别", t, func() {
		for _, name := range []string{"debug", "INFO", "warn", "warning", "error"} {
			_, err := parseLevel(name)
			So(err, ShouldBeNil)
		}
		_, err := parseLevel("fatal")
		So(err, ShouldNotBeNil)
	})
}
