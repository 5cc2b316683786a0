package dialect

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hatlonely/dbx/dberr"
	"github.com/hatlonely/dbx/log/logger"
	"github.com/hatlonely/dbx/phrase"
	"github.com/hatlonely/dbx/ref"
	"github.com/hatlonely/dbx/schema"
	"github.com/hatlonely/dbx/sequence"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/vjeantet/jodaTime"
)

func init() {
	ref.MustRegisterT[*Driver](NewDriverWithOptions)
}

// Feature 驱动可选支持的功能
type Feature int

const (
	FeatureCreateSchema Feature = iota
	FeatureSequences
)

// Driver 把抽象的 schema 翻译成某种数据库的 SQL，创建之后不可修改，可以并发使用
type Driver struct {
	profile           *Profile
	databaseName      string
	useSequenceTable  bool
	sequenceTableName string
	ddlColumnDefaults bool
	uuid              *sequence.UUIDGenerator
	logger            logger.Logger
}

var _ schema.Driver = (*Driver)(nil)

// Name 方言名
func (d *Driver) Name() string {
	return d.profile.Name
}

func (d *Driver) DatabaseName() string {
	return d.databaseName
}

func (d *Driver) UseSequenceTable() bool {
	return d.useSequenceTable
}

func (d *Driver) SequenceTableName() string {
	return d.sequenceTableName
}

func (d *Driver) DDLColumnDefaults() bool {
	return d.ddlColumnDefaults
}

// IsSupported 序列只有在使用序列表时才支持
func (d *Driver) IsSupported(f Feature) bool {
	switch f {
	case FeatureCreateSchema:
		return true
	case FeatureSequences:
		return d.useSequenceTable
	}
	return false
}

// Phrase 未定义的片段记录告警日志并返回 phrase.Fallback
func (d *Driver) Phrase(p phrase.Phrase) string {
	if s, ok := d.profile.Phrases.Lookup(p); ok {
		return s
	}
	d.logger.Warn("sql phrase is not defined", "phrase", p.String())
	phraseFallbacks.WithLabelValues(d.profile.Name).Inc()
	return phrase.Fallback
}

// ConvertPhrase 转换到 dest 类型的 CAST 模板
func (d *Driver) ConvertPhrase(dest schema.DataType) string {
	if s, ok := d.profile.Converts.Lookup(dest); ok {
		return s
	}
	d.logger.Warn("convert phrase is not defined", "type", dest.String())
	phraseFallbacks.WithLabelValues(d.profile.Name).Inc()
	return phrase.Fallback
}

// Func 渲染函数片段，例如 Func(phrase.FuncCoalesce, "name", "'-'") 得到 coalesce(name, '-')
func (d *Driver) Func(p phrase.Phrase, operand string, args ...string) string {
	return phrase.Format(d.Phrase(p), operand, args...)
}

func (d *Driver) Convert(operand string, dest schema.DataType) string {
	return phrase.Format(d.ConvertPhrase(dest), operand)
}

// QuoteName 名字不是普通标识符或者是保留字时加上引号
func (d *Driver) QuoteName(name string) string {
	if !d.needsQuotes(name) {
		return name
	}
	open, end := d.Phrase(phrase.QuotesOpen), d.Phrase(phrase.QuotesClose)
	return open + strings.ReplaceAll(name, end, end+end) + end
}

func (d *Driver) needsQuotes(name string) bool {
	if name == "" {
		return false
	}
	for i, ch := range name {
		switch {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return true
		}
	}
	lower := strings.ToLower(name)
	for _, k := range d.profile.Keywords {
		if k == lower {
			return true
		}
	}
	return false
}

// QualifiedName 数据库有 schema 时带上 schema 前缀
func (d *Driver) QualifiedName(t *schema.Table) string {
	return d.qualify(t.Database(), t.Name())
}

// ValueString 把值渲染为 SQL 字面量
func (d *Driver) ValueString(value any, dataType schema.DataType) string {
	if value == nil {
		return d.Phrase(phrase.NullValue)
	}
	if _, ok := value.(schema.SysDateValue); ok {
		if dataType == schema.TypeDate {
			return d.Phrase(phrase.CurrentDate)
		}
		return d.Phrase(phrase.CurrentDateTime)
	}

	switch dataType {
	case schema.TypeDate:
		return d.dateString(value, phrase.DatePattern, phrase.DateTemplate)
	case schema.TypeDateTime:
		return d.dateString(value, phrase.DateTimePattern, phrase.DateTimeTemplate)
	case schema.TypeBool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return d.textString(cast.ToString(value))
		}
		if b {
			return d.Phrase(phrase.BooleanTrue)
		}
		return d.Phrase(phrase.BooleanFalse)
	case schema.TypeInteger, schema.TypeAutoInc, schema.TypeDouble, schema.TypeDecimal:
		return d.numberString(value)
	}
	return d.textString(cast.ToString(value))
}

func (d *Driver) dateString(value any, pattern phrase.Phrase, template phrase.Phrase) string {
	var text string
	switch v := value.(type) {
	case time.Time:
		text = jodaTime.Format(d.Phrase(pattern), v)
	case *time.Time:
		if v == nil {
			return d.Phrase(phrase.NullValue)
		}
		text = jodaTime.Format(d.Phrase(pattern), *v)
	default:
		text = d.escape(cast.ToString(value))
	}
	return phrase.Format(d.Phrase(template), "", text)
}

func (d *Driver) numberString(value any) string {
	switch v := value.(type) {
	case decimal.Decimal:
		return v.String()
	case string:
		s := strings.TrimSpace(v)
		if _, err := decimal.NewFromString(s); err == nil {
			return s
		}
		return d.textString(v)
	case bool:
		if v {
			return "1"
		}
		return "0"
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		d.logger.Warn("cannot render numeric value", "value", value, "error", err)
		return d.Phrase(phrase.NullValue)
	}
	return s
}

func (d *Driver) textString(s string) string {
	return "'" + d.escape(s) + "'"
}

func (d *Driver) escape(s string) string {
	if d.profile.EscapeBackslash {
		s = strings.ReplaceAll(s, `\`, `\\`)
	}
	return strings.ReplaceAll(s, "'", "''")
}

// ColumnAutoValue 插入记录时列的自动值
//
// 不使用序列表时 AUTOINC 返回 nil，由数据库生成；UNIQUEID 生成新的 UUID；
// 默认值为 SysDate 的日期列使用 UpdateTimestamp；其他列返回默认值
func (d *Driver) ColumnAutoValue(ctx context.Context, c *schema.Column, gen sequence.Generator) (any, error) {
	switch c.DataType() {
	case schema.TypeAutoInc:
		return d.NextSequenceValue(ctx, gen, c.SequenceName(), 1)
	case schema.TypeUniqueID:
		return d.uuid.Generate()
	case schema.TypeDate, schema.TypeDateTime:
		if _, ok := c.DefaultValue().(schema.SysDateValue); ok {
			return d.UpdateTimestamp(), nil
		}
	}
	return c.DefaultValue(), nil
}

// SequenceGenerator 基于 db 中序列表的生成器，表名按方言规则加引号
func (d *Driver) SequenceGenerator(db *sql.DB) *sequence.TableGenerator {
	return sequence.NewTableGenerator(db, d.sequenceTableName).WithQuote(d.QuoteName)
}

// NextSequenceValue 不使用序列表时返回 nil
func (d *Driver) NextSequenceValue(ctx context.Context, gen sequence.Generator, name string, minValue int64) (any, error) {
	if !d.useSequenceTable {
		return nil, nil
	}
	if gen == nil {
		return nil, dberr.NewInvalidArgument(nil, "generator")
	}
	v, err := gen.Next(ctx, name, minValue)
	if err != nil {
		return nil, errors.WithMessagef(err, "next value of sequence %s failed", name)
	}
	return v, nil
}

func (d *Driver) UpdateTimestamp() time.Time {
	return time.Now()
}
