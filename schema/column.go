package schema

import (
	"fmt"
	"math"

	"github.com/hatlonely/dbx/dberr"
	"github.com/spf13/cast"
)

// ColumnID 列在数据库中的稳定标识：所属表和表内序号
type ColumnID struct {
	Table   TableID
	Ordinal int
}

var unattached = ColumnID{Table: -1, Ordinal: -1}

// Column 表中的一列
//
// size 对文本类型是字符长度，对 DECIMAL 是 precision.scale，例如 10.2 表示 DECIMAL(10,2)
type Column struct {
	name       string
	dataType   DataType
	size       float64
	mode       DataMode
	defValue   any
	attributes map[string]any
	scale      int

	db *Database
	id ColumnID
}

// NewColumn 创建未挂到表上的列
//
// TypeAutoInc 强制为 AutoGenerated，TypeInteger + AutoGenerated 会变成 TypeAutoInc
func NewColumn(name string, dataType DataType, size float64, mode DataMode, defValue any) (*Column, error) {
	if name == "" {
		return nil, dberr.NewInvalidArgument(name, "name")
	}
	if dataType == TypeAutoInc && mode != AutoGenerated {
		mode = AutoGenerated
	}
	if dataType == TypeInteger && mode == AutoGenerated {
		dataType = TypeAutoInc
	}

	c := &Column{
		name:       name,
		dataType:   dataType,
		mode:       mode,
		defValue:   defValue,
		attributes: map[string]any{},
		id:         unattached,
	}
	if err := c.SetSize(size); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) DataType() DataType {
	return c.dataType
}

func (c *Column) Size() float64 {
	return c.size
}

func (c *Column) Mode() DataMode {
	return c.mode
}

func (c *Column) DefaultValue() any {
	return c.defValue
}

func (c *Column) SetDefaultValue(value any) {
	c.defValue = value
}

func (c *Column) ID() ColumnID {
	return c.id
}

// Table 所属的表，未挂到表上时为 nil
func (c *Column) Table() *Table {
	if c.db == nil {
		return nil
	}
	return c.db.Table(c.id.Table)
}

// SetSize 负数表示单字节字符，只对文本类型有效
func (c *Column) SetSize(size float64) error {
	if size < 0 {
		if !c.dataType.IsText() {
			return dberr.NewInvalidArgument(size, "size")
		}
		c.attributes[AttrSingleByteChars] = true
		size = math.Abs(size)
	} else {
		delete(c.attributes, AttrSingleByteChars)
	}

	c.size = size
	if c.dataType == TypeDecimal {
		c.scale = int(math.Round((size - math.Floor(size)) * 10))
	}
	return nil
}

// Precision DECIMAL 的总位数，即 size 的整数部分
func (c *Column) Precision() int {
	return int(c.size)
}

// DecimalScale 非 DECIMAL 列返回 0
func (c *Column) DecimalScale() int {
	return c.scale
}

func (c *Column) SetDecimalScale(scale int) error {
	if c.dataType != TypeDecimal {
		return dberr.NewNotSupported(c.name, "SetDecimalScale")
	}
	c.scale = scale
	return nil
}

func (c *Column) IsRequired() bool {
	return c.mode == NotNull
}

func (c *Column) IsAutoGenerated() bool {
	return c.mode == AutoGenerated
}

func (c *Column) SetRequired(required bool) error {
	if c.IsAutoGenerated() {
		return dberr.NewPropertyReadOnly("required")
	}
	if required {
		c.mode = NotNull
	} else {
		c.mode = Nullable
	}
	return nil
}

func (c *Column) IsReadOnly() bool {
	if _, ok := c.attributes[AttrReadOnly]; ok {
		return true
	}
	return c.mode == ReadOnly || c.mode == AutoGenerated
}

func (c *Column) SetReadOnly(readOnly bool) {
	if readOnly {
		c.attributes[AttrReadOnly] = true
	} else {
		delete(c.attributes, AttrReadOnly)
	}
}

func (c *Column) IsSingleByteChars() bool {
	return cast.ToBool(c.attributes[AttrSingleByteChars])
}

func (c *Column) SetSingleByteChars(singleByteChars bool) error {
	if !c.dataType.IsText() {
		return dberr.NewNotSupported(c.name, "SetSingleByteChars")
	}
	c.attributes[AttrSingleByteChars] = singleByteChars
	return nil
}

func (c *Column) Attribute(key string) any {
	return c.attributes[key]
}

func (c *Column) SetAttribute(key string, value any) {
	c.attributes[key] = value
}

func (c *Column) RemoveAttribute(key string) {
	delete(c.attributes, key)
}

// SequenceName 默认值作为序列名，没有默认值时为 <table>.<column>
func (c *Column) SequenceName() string {
	if c.defValue != nil {
		return fmt.Sprint(c.defValue)
	}
	if t := c.Table(); t != nil {
		return t.Name() + "." + c.name
	}
	return c.name
}

// ReferenceOn 以当前列为外键列，target 为被引用的列
func (c *Column) ReferenceOn(target *Column) Reference {
	return Reference{Source: c.id, Target: target.id}
}

// Clone 复制列定义并加到 table 中
func (c *Column) Clone(table *Table) (*Column, error) {
	clone := &Column{
		name:       c.name,
		dataType:   c.dataType,
		size:       c.size,
		mode:       c.mode,
		defValue:   c.defValue,
		attributes: make(map[string]any, len(c.attributes)),
		scale:      c.scale,
		id:         unattached,
	}
	for k, v := range c.attributes {
		clone.attributes[k] = v
	}
	if err := table.Add(clone); err != nil {
		return nil, err
	}
	return clone, nil
}

// Kind 实现 Object
func (c *Column) Kind() Kind {
	return KindColumn
}

// Database 未挂到表上时为 nil
func (c *Column) Database() *Database {
	return c.db
}

func (c *Column) object() {}

func (c *Column) String() string {
	if t := c.Table(); t != nil {
		return t.Name() + "." + c.name
	}
	return c.name
}
