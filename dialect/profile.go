package dialect

import (
	"sort"
	"sync"

	"github.com/hatlonely/dbx/phrase"
	"github.com/hatlonely/dbx/schema"
	"github.com/pkg/errors"
)

// Profile 一种数据库的 SQL 方言：片段模板、类型关键字和 DDL 语法差异
//
// 注册之后不能再修改，Driver 使用的是 Build 时的副本
type Profile struct {
	Name     string
	Phrases  phrase.Table
	Converts phrase.ConvertTable

	// BlobType BLOB 列的类型关键字
	BlobType string
	// AlterColumn 修改列定义的关键字，ALTER TABLE t <AlterColumn> <列定义>
	AlterColumn string
	// DropForeignKey 删除外键的子句，ALTER TABLE t <DropForeignKey> <name>
	DropForeignKey string
	// DropDatabase 删除数据库时的对象类型，DROP <DropDatabase> <name>
	DropDatabase string
	// CreateDatabase、UseDatabase 设置了 databaseName 时创建数据库的语句，{0} 为数据库名
	CreateDatabase string
	UseDatabase    string
	// EscapeBackslash 字符串字面量中的反斜杠需要转义
	EscapeBackslash bool
	// Keywords 作为名字时需要加引号的保留字，小写
	Keywords []string
}

var reservedKeywords = []string{
	"all", "alter", "and", "as", "between", "by", "case", "check", "column", "constraint", "create",
	"cross", "current_date", "current_time", "current_timestamp", "date", "default", "delete",
	"distinct", "drop", "else", "end", "exists", "false", "for", "foreign", "from", "full", "group",
	"having", "in", "index", "inner", "insert", "intersect", "into", "is", "join", "key", "left",
	"like", "limit", "minus", "natural", "not", "null", "on", "or", "order", "primary", "references",
	"right", "rownum", "select", "set", "table", "then", "true", "union", "unique", "update", "user",
	"values", "when", "where", "with",
}

func h2Profile() *Profile {
	return &Profile{
		Name: "h2",
		Phrases: phrase.Table{
			phrase.NullValue:        "null",
			phrase.Parameter:        " ? ",
			phrase.RenameTable:      " ",
			phrase.RenameColumn:     " AS ",
			phrase.DatabaseLink:     "@",
			phrase.QuotesOpen:       `"`,
			phrase.QuotesClose:      `"`,
			phrase.ConcatExpr:       "concat(?, {0})",
			phrase.BooleanTrue:      "1",
			phrase.BooleanFalse:     "0",
			phrase.CurrentDate:      "CURRENT_DATE()",
			phrase.DatePattern:      "yyyy-MM-dd",
			phrase.DateTemplate:     "'{0}'",
			phrase.CurrentDateTime:  "NOW()",
			phrase.DateTimePattern:  "yyyy-MM-dd HH:mm:ss",
			phrase.DateTimeTemplate: "'{0}'",
			phrase.FuncCoalesce:     "coalesce(?, {0})",
			phrase.FuncSubstring:    "substring(?, {0})",
			phrase.FuncSubstringEx:  "substring(?, {0}, {1})",
			phrase.FuncReplace:      "replace(?, {0}, {1})",
			phrase.FuncReverse:      "reverse_not_available_in_h2(?)",
			phrase.FuncStrIndex:     "instr(?, {0})",
			phrase.FuncStrIndexFrom: "locate({0}, ?, {1})",
			phrase.FuncLength:       "length(?)",
			phrase.FuncUpper:        "upper(?)",
			phrase.FuncLower:        "lcase(?)",
			phrase.FuncTrim:         "trim(?)",
			phrase.FuncLTrim:        "ltrim(?)",
			phrase.FuncRTrim:        "rtrim(?)",
			phrase.FuncEscape:       "? escape '{0}'",
			phrase.FuncAbs:          "abs(?)",
			phrase.FuncRound:        "round(?,{0})",
			phrase.FuncTrunc:        "truncate(?,{0})",
			phrase.FuncCeiling:      "ceiling(?)",
			phrase.FuncFloor:        "floor(?)",
			phrase.FuncDay:          "day(?)",
			phrase.FuncMonth:        "month(?)",
			phrase.FuncYear:         "year(?)",
			phrase.FuncSum:          "sum(?)",
			phrase.FuncMax:          "max(?)",
			phrase.FuncMin:          "min(?)",
			phrase.FuncAvg:          "avg(?)",
			phrase.FuncDecode:       "case ? {0} end",
			phrase.FuncDecodeSep:    " ",
			phrase.FuncDecodePart:   "when {0} then {1}",
			phrase.FuncDecodeElse:   "else {0}",
		},
		Converts: phrase.ConvertTable{
			schema.TypeBool:     "CAST(? AS UNSIGNED)",
			schema.TypeInteger:  "CAST(? AS SIGNED)",
			schema.TypeDecimal:  "CAST(? AS DECIMAL)",
			schema.TypeDouble:   "CAST(? AS DECIMAL)",
			schema.TypeDate:     "CAST(? AS DATE)",
			schema.TypeDateTime: "CAST(? AS DATETIME)",
			schema.TypeText:     "CAST(? AS CHAR)",
			schema.TypeBlob:     "CAST(? AS BLOB)",
		},
		BlobType:       "BLOB",
		AlterColumn:    "ALTER",
		DropForeignKey: "DROP CONSTRAINT",
		DropDatabase:   "SCHEMA",
		CreateDatabase: "CREATE SCHEMA IF NOT EXISTS {0}",
		UseDatabase:    "SET SCHEMA {0}",
		Keywords:       reservedKeywords,
	}
}

func mysqlProfile() *Profile {
	p := h2Profile()
	p.Name = "mysql"
	p.Phrases[phrase.QuotesOpen] = "`"
	p.Phrases[phrase.QuotesClose] = "`"
	p.Phrases[phrase.FuncReverse] = "reverse(?)"
	p.Phrases[phrase.FuncLower] = "lower(?)"
	p.Converts[schema.TypeBlob] = "CAST(? AS BINARY)"
	p.BlobType = "LONGBLOB"
	p.AlterColumn = "MODIFY"
	p.DropForeignKey = "DROP FOREIGN KEY"
	p.DropDatabase = "DATABASE"
	p.CreateDatabase = "CREATE DATABASE IF NOT EXISTS {0}"
	p.UseDatabase = "USE {0}"
	p.EscapeBackslash = true
	p.Keywords = append(append([]string(nil), reservedKeywords...), "interval", "range", "read", "rank", "status")
	return p
}

func (p *Profile) clone() *Profile {
	c := *p
	c.Phrases = p.Phrases.Clone()
	c.Converts = p.Converts.Clone()
	c.Keywords = append([]string(nil), p.Keywords...)
	return &c
}

var profiles sync.Map

func init() {
	MustRegisterProfile(h2Profile())
	MustRegisterProfile(mysqlProfile())
}

// RegisterProfile 注册新的方言，名字不能重复
func RegisterProfile(p *Profile) error {
	if p == nil || p.Name == "" {
		return errors.New("profile name is empty")
	}
	if _, loaded := profiles.LoadOrStore(p.Name, p.clone()); loaded {
		return errors.Errorf("profile %s already registered", p.Name)
	}
	return nil
}

func MustRegisterProfile(p *Profile) {
	if err := RegisterProfile(p); err != nil {
		panic(err)
	}
}

// LookupProfile 返回注册的方言的副本
func LookupProfile(name string) (*Profile, bool) {
	v, ok := profiles.Load(name)
	if !ok {
		return nil, false
	}
	return v.(*Profile).clone(), true
}

// Profiles 所有注册的方言名，按名字排序
func Profiles() []string {
	var names []string
	profiles.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	sort.Strings(names)
	return names
}
