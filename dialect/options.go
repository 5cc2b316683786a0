package dialect

import (
	"github.com/hatlonely/dbx/log"
	"github.com/hatlonely/dbx/phrase"
	"github.com/hatlonely/dbx/ref"
	"github.com/hatlonely/dbx/sequence"
	"github.com/pkg/errors"
)

// Options 驱动配置，可以通过 cfg 从配置文件加载
type Options struct {
	// Dialect 方言名：h2, mysql 或者通过 RegisterProfile 注册的方言
	Dialect string `cfg:"dialect" def:"h2"`

	// DatabaseName 不为空时，创建数据库的脚本先创建并切换到该 schema
	DatabaseName string `cfg:"databaseName"`

	// UseSequenceTable 使用序列表生成自增值，否则使用数据库的 AUTO_INCREMENT
	UseSequenceTable  bool   `cfg:"useSequenceTable"`
	SequenceTableName string `cfg:"sequenceTableName" def:"Sequences"`

	// DDLColumnDefaults 在列定义中输出 DEFAULT 子句
	DDLColumnDefaults bool `cfg:"ddlColumnDefaults"`

	// Phrases 按 phrase 名覆盖方言的片段模板，例如 FuncLower: "lower(?)"
	Phrases map[string]string `cfg:"phrases"`

	UUID   sequence.UUIDOptions `cfg:"uuid"`
	Logger *ref.TypeOptions     `cfg:"logger"`
}

// NewDriverWithOptions 根据配置创建驱动
func NewDriverWithOptions(options *Options) (*Driver, error) {
	if options == nil {
		options = &Options{}
	}

	b := NewBuilder(options.Dialect).
		DatabaseName(options.DatabaseName).
		UseSequenceTable(options.UseSequenceTable).
		SequenceTableName(options.SequenceTableName).
		DDLColumnDefaults(options.DDLColumnDefaults).
		UUID(&options.UUID)

	for name, template := range options.Phrases {
		p, ok := phrase.Parse(name)
		if !ok {
			return nil, errors.Errorf("unknown phrase %q", name)
		}
		b.Phrase(p, template)
	}

	if options.Logger != nil {
		l, err := log.NewLoggerWithOptions(options.Logger)
		if err != nil {
			return nil, errors.WithMessage(err, "failed to create logger")
		}
		b.Logger(l)
	}

	return b.Build()
}
