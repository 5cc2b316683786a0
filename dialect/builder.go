package dialect

import (
	"github.com/hatlonely/dbx/log"
	"github.com/hatlonely/dbx/log/logger"
	"github.com/hatlonely/dbx/phrase"
	"github.com/hatlonely/dbx/sequence"
	"github.com/pkg/errors"
)

// Builder 收集驱动的配置，Build 之后得到不可变的 Driver
type Builder struct {
	dialect           string
	databaseName      string
	useSequenceTable  bool
	sequenceTableName string
	ddlColumnDefaults bool
	phrases           phrase.Table
	uuid              *sequence.UUIDOptions
	logger            logger.Logger
}

// NewBuilder dialect 为空时使用 h2
func NewBuilder(dialect string) *Builder {
	return &Builder{
		dialect:           dialect,
		sequenceTableName: "Sequences",
		phrases:           phrase.Table{},
	}
}

func (b *Builder) DatabaseName(name string) *Builder {
	b.databaseName = name
	return b
}

func (b *Builder) UseSequenceTable(use bool) *Builder {
	b.useSequenceTable = use
	return b
}

// SequenceTableName 为空时保持默认的 Sequences
func (b *Builder) SequenceTableName(name string) *Builder {
	if name != "" {
		b.sequenceTableName = name
	}
	return b
}

func (b *Builder) DDLColumnDefaults(enabled bool) *Builder {
	b.ddlColumnDefaults = enabled
	return b
}

// Phrase 覆盖方言中的一个片段模板
func (b *Builder) Phrase(p phrase.Phrase, template string) *Builder {
	b.phrases[p] = template
	return b
}

func (b *Builder) UUID(options *sequence.UUIDOptions) *Builder {
	b.uuid = options
	return b
}

func (b *Builder) Logger(l logger.Logger) *Builder {
	b.logger = l
	return b
}

func (b *Builder) Build() (*Driver, error) {
	name := b.dialect
	if name == "" {
		name = "h2"
	}
	profile, ok := LookupProfile(name)
	if !ok {
		return nil, errors.Errorf("unknown dialect %q, registered: %v", name, Profiles())
	}
	for p, template := range b.phrases {
		profile.Phrases[p] = template
	}

	uuidGenerator, err := sequence.NewUUIDGeneratorWithOptions(b.uuid)
	if err != nil {
		return nil, errors.WithMessage(err, "sequence.NewUUIDGeneratorWithOptions failed")
	}

	l := b.logger
	if l == nil {
		l = log.Default()
	}

	return &Driver{
		profile:           profile,
		databaseName:      b.databaseName,
		useSequenceTable:  b.useSequenceTable,
		sequenceTableName: b.sequenceTableName,
		ddlColumnDefaults: b.ddlColumnDefaults,
		uuid:              uuidGenerator,
		logger:            l.With("dialect", profile.Name),
	}, nil
}
