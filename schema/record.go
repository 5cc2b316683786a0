package schema

import (
	"github.com/hatlonely/dbx/dberr"
)

// Record 一张表的一行数据，写入前经过列校验
type Record struct {
	table    *Table
	values   []any
	modified []bool
}

func NewRecord(table *Table) *Record {
	return &Record{
		table:    table,
		values:   make([]any, len(table.columns)),
		modified: make([]bool, len(table.columns)),
	}
}

func (r *Record) Table() *Table {
	return r.table
}

func (r *Record) Value(c *Column) any {
	if !r.table.owns(c) || c.id.Ordinal >= len(r.values) {
		return nil
	}
	return r.values[c.id.Ordinal]
}

// SetValue 只读列返回 PropertyReadOnly，值不合法时返回校验错误，记录保持不变
func (r *Record) SetValue(c *Column, value any) error {
	if !r.table.owns(c) || c.id.Ordinal >= len(r.values) {
		return dberr.NewInvalidArgument(c, "column")
	}
	if c.IsReadOnly() {
		return dberr.NewPropertyReadOnly(c.name)
	}

	v, err := c.Validate(value)
	if err != nil {
		return err
	}
	r.values[c.id.Ordinal] = v
	r.modified[c.id.Ordinal] = true
	return nil
}

// InitValue 不做只读和校验检查，用于装载数据库中的值或自动生成的值
func (r *Record) InitValue(c *Column, value any) error {
	if !r.table.owns(c) || c.id.Ordinal >= len(r.values) {
		return dberr.NewInvalidArgument(c, "column")
	}
	r.values[c.id.Ordinal] = value
	return nil
}

func (r *Record) IsModified(c *Column) bool {
	if !r.table.owns(c) || c.id.Ordinal >= len(r.modified) {
		return false
	}
	return r.modified[c.id.Ordinal]
}

// ModifiedColumns 按列顺序返回
func (r *Record) ModifiedColumns() []*Column {
	var columns []*Column
	for i, m := range r.modified {
		if m {
			columns = append(columns, r.table.columns[i])
		}
	}
	return columns
}

// ClearModified 写入数据库后调用
func (r *Record) ClearModified() {
	for i := range r.modified {
		r.modified[i] = false
	}
}
