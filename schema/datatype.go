package schema

// DataType 列的抽象类型，与具体数据库无关
type DataType int

const (
	TypeUnknown DataType = iota
	TypeInteger
	TypeAutoInc
	TypeText
	TypeChar
	TypeDate
	TypeDateTime
	TypeBool
	TypeDouble
	TypeDecimal
	TypeClob
	TypeBlob
	TypeUniqueID
)

var dataTypeNames = [...]string{
	TypeUnknown:  "UNKNOWN",
	TypeInteger:  "INTEGER",
	TypeAutoInc:  "AUTOINC",
	TypeText:     "TEXT",
	TypeChar:     "CHAR",
	TypeDate:     "DATE",
	TypeDateTime: "DATETIME",
	TypeBool:     "BOOL",
	TypeDouble:   "DOUBLE",
	TypeDecimal:  "DECIMAL",
	TypeClob:     "CLOB",
	TypeBlob:     "BLOB",
	TypeUniqueID: "UNIQUEID",
}

func (t DataType) String() string {
	if t < 0 || int(t) >= len(dataTypeNames) {
		return "UNKNOWN"
	}
	return dataTypeNames[t]
}

// ParseDataType 不认识的名字返回 TypeUnknown
func ParseDataType(name string) DataType {
	for i, n := range dataTypeNames {
		if n == name {
			return DataType(i)
		}
	}
	return TypeUnknown
}

// IsText TEXT, CHAR, CLOB
func (t DataType) IsText() bool {
	return t == TypeText || t == TypeChar || t == TypeClob
}

func (t DataType) IsNumeric() bool {
	return t == TypeInteger || t == TypeAutoInc || t == TypeDouble || t == TypeDecimal
}

// IsDate DATE, DATETIME
func (t DataType) IsDate() bool {
	return t == TypeDate || t == TypeDateTime
}

// DataMode 列的可空性和生成方式
type DataMode int

const (
	Nullable DataMode = iota
	NotNull
	ReadOnly
	AutoGenerated
)

func (m DataMode) String() string {
	switch m {
	case NotNull:
		return "NotNull"
	case ReadOnly:
		return "ReadOnly"
	case AutoGenerated:
		return "AutoGenerated"
	default:
		return "Nullable"
	}
}

// SysDateValue 表示由数据库生成的当前时间，写入 SQL 时渲染为 CURRENT_DATE 或 NOW()
type SysDateValue struct{}

func (SysDateValue) String() string {
	return "sysdate"
}

var SysDate = SysDateValue{}

// 列属性
const (
	AttrSingleByteChars = "singleByteChars"
	AttrMinValue        = "minValue"
	AttrMaxValue        = "maxValue"
	AttrReadOnly        = "readonly"
	AttrDateTimePattern = "dateTimePattern"
)

// DefaultDateTimePattern joda 风格的时间格式
const DefaultDateTimePattern = "yyyy-MM-dd HH:mm:ss"
