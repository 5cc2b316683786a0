package phrase

import (
	"strconv"
	"strings"

	"github.com/hatlonely/dbx/schema"
)

// Phrase SQL 片段的逻辑名
type Phrase int

const (
	NullValue Phrase = iota
	Parameter
	RenameTable
	RenameColumn
	DatabaseLink
	QuotesOpen
	QuotesClose
	ConcatExpr
	BooleanTrue
	BooleanFalse
	CurrentDate
	DatePattern
	DateTemplate
	CurrentDateTime
	DateTimePattern
	DateTimeTemplate
	FuncCoalesce
	FuncSubstring
	FuncSubstringEx
	FuncReplace
	FuncReverse
	FuncStrIndex
	FuncStrIndexFrom
	FuncLength
	FuncUpper
	FuncLower
	FuncTrim
	FuncLTrim
	FuncRTrim
	FuncEscape
	FuncAbs
	FuncRound
	FuncTrunc
	FuncCeiling
	FuncFloor
	FuncDay
	FuncMonth
	FuncYear
	FuncSum
	FuncMax
	FuncMin
	FuncAvg
	FuncDecode
	FuncDecodeSep
	FuncDecodePart
	FuncDecodeElse
	phraseCount
)

var names = [...]string{
	NullValue:        "NullValue",
	Parameter:        "Parameter",
	RenameTable:      "RenameTable",
	RenameColumn:     "RenameColumn",
	DatabaseLink:     "DatabaseLink",
	QuotesOpen:       "QuotesOpen",
	QuotesClose:      "QuotesClose",
	ConcatExpr:       "ConcatExpr",
	BooleanTrue:      "BooleanTrue",
	BooleanFalse:     "BooleanFalse",
	CurrentDate:      "CurrentDate",
	DatePattern:      "DatePattern",
	DateTemplate:     "DateTemplate",
	CurrentDateTime:  "CurrentDateTime",
	DateTimePattern:  "DateTimePattern",
	DateTimeTemplate: "DateTimeTemplate",
	FuncCoalesce:     "FuncCoalesce",
	FuncSubstring:    "FuncSubstring",
	FuncSubstringEx:  "FuncSubstringEx",
	FuncReplace:      "FuncReplace",
	FuncReverse:      "FuncReverse",
	FuncStrIndex:     "FuncStrIndex",
	FuncStrIndexFrom: "FuncStrIndexFrom",
	FuncLength:       "FuncLength",
	FuncUpper:        "FuncUpper",
	FuncLower:        "FuncLower",
	FuncTrim:         "FuncTrim",
	FuncLTrim:        "FuncLTrim",
	FuncRTrim:        "FuncRTrim",
	FuncEscape:       "FuncEscape",
	FuncAbs:          "FuncAbs",
	FuncRound:        "FuncRound",
	FuncTrunc:        "FuncTrunc",
	FuncCeiling:      "FuncCeiling",
	FuncFloor:        "FuncFloor",
	FuncDay:          "FuncDay",
	FuncMonth:        "FuncMonth",
	FuncYear:         "FuncYear",
	FuncSum:          "FuncSum",
	FuncMax:          "FuncMax",
	FuncMin:          "FuncMin",
	FuncAvg:          "FuncAvg",
	FuncDecode:       "FuncDecode",
	FuncDecodeSep:    "FuncDecodeSep",
	FuncDecodePart:   "FuncDecodePart",
	FuncDecodeElse:   "FuncDecodeElse",
}

func (p Phrase) String() string {
	if p < 0 || p >= phraseCount {
		return "Phrase(" + strconv.Itoa(int(p)) + ")"
	}
	return names[p]
}

// Parse 按名字查找，名字不区分大小写
func Parse(name string) (Phrase, bool) {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return Phrase(i), true
		}
	}
	return 0, false
}

// All 返回所有 Phrase
func All() []Phrase {
	phrases := make([]Phrase, phraseCount)
	for i := range phrases {
		phrases[i] = Phrase(i)
	}
	return phrases
}

// Fallback 未定义的 phrase 或类型转换返回的占位符，由驱动记录告警并计数
const Fallback = "?"

// Table 一种数据库的 SQL 片段模板
type Table map[Phrase]string

func (t Table) Lookup(p Phrase) (string, bool) {
	s, ok := t[p]
	return s, ok
}

// Clone 返回副本，修改副本不影响原表
func (t Table) Clone() Table {
	clone := make(Table, len(t))
	for k, v := range t {
		clone[k] = v
	}
	return clone
}

// ConvertTable 转换到目标类型的 CAST 模板
type ConvertTable map[schema.DataType]string

func (t ConvertTable) Lookup(dest schema.DataType) (string, bool) {
	s, ok := t[dest]
	return s, ok
}

func (t ConvertTable) Clone() ConvertTable {
	clone := make(ConvertTable, len(t))
	for k, v := range t {
		clone[k] = v
	}
	return clone
}

// Format 渲染模板：? 替换为 value，{0}、{1} 替换为 args 中对应的参数，越界的占位符原样保留
func Format(template string, value string, args ...string) string {
	var sb strings.Builder
	for i := 0; i < len(template); i++ {
		ch := template[i]
		switch {
		case ch == '?':
			sb.WriteString(value)
		case ch == '{':
			end := strings.IndexByte(template[i:], '}')
			if end > 1 {
				if n, err := strconv.Atoi(template[i+1 : i+end]); err == nil && n >= 0 && n < len(args) {
					sb.WriteString(args[n])
					i += end
					continue
				}
			}
			sb.WriteByte(ch)
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}
