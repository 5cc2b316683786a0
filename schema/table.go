package schema

import (
	"github.com/hatlonely/dbx/dberr"
)

// TableID 表在数据库中的下标
type TableID int

// Table 有序的列、可选的主键和若干索引
type Table struct {
	name       string
	comment    string
	columns    []*Column
	primaryKey *Index
	indexes    []*Index

	db *Database
	id TableID
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) ID() TableID {
	return t.id
}

func (t *Table) Comment() string {
	return t.comment
}

func (t *Table) SetComment(comment string) {
	t.comment = comment
}

// Columns 按添加顺序返回
func (t *Table) Columns() []*Column {
	return t.columns
}

// Column 按名字查找列，找不到返回 nil
func (t *Table) Column(name string) *Column {
	for _, c := range t.columns {
		if c.name == name {
			return c
		}
	}
	return nil
}

// AddColumn 创建列并加到表的末尾
func (t *Table) AddColumn(name string, dataType DataType, size float64, mode DataMode, defValue any) (*Column, error) {
	c, err := NewColumn(name, dataType, size, mode, defValue)
	if err != nil {
		return nil, err
	}
	if err := t.Add(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Add 把未挂到表上的列加到表的末尾，列名不能重复
func (t *Table) Add(c *Column) error {
	if c == nil {
		return dberr.NewInvalidArgument(nil, "column")
	}
	if c.db != nil {
		return dberr.NewInvalidArgument(c.String(), "column")
	}
	if t.Column(c.name) != nil {
		return dberr.NewInvalidArgument(t.name+"."+c.name, "name")
	}

	c.db = t.db
	c.id = ColumnID{Table: t.id, Ordinal: len(t.columns)}
	t.columns = append(t.columns, c)
	return nil
}

func (t *Table) owns(c *Column) bool {
	return c != nil && c.db == t.db && c.id.Table == t.id
}

// SetPrimaryKey 主键索引名为 <table>_PK
func (t *Table) SetPrimaryKey(columns ...*Column) error {
	idx, err := t.newIndex(t.name+"_PK", IndexPrimaryKey, columns)
	if err != nil {
		return err
	}
	if t.primaryKey != nil {
		for i, x := range t.indexes {
			if x == t.primaryKey {
				t.indexes = append(t.indexes[:i], t.indexes[i+1:]...)
				break
			}
		}
	}
	t.primaryKey = idx
	t.indexes = append([]*Index{idx}, t.indexes...)
	return nil
}

func (t *Table) PrimaryKey() *Index {
	return t.primaryKey
}

// AddIndex 添加二级索引，kind 为 IndexPrimaryKey 时等同于 SetPrimaryKey
func (t *Table) AddIndex(name string, kind IndexKind, columns ...*Column) (*Index, error) {
	if kind == IndexPrimaryKey {
		if err := t.SetPrimaryKey(columns...); err != nil {
			return nil, err
		}
		return t.primaryKey, nil
	}
	if name == "" {
		return nil, dberr.NewInvalidArgument(name, "name")
	}
	for _, x := range t.indexes {
		if x.name == name {
			return nil, dberr.NewInvalidArgument(name, "name")
		}
	}

	idx, err := t.newIndex(name, kind, columns)
	if err != nil {
		return nil, err
	}
	t.indexes = append(t.indexes, idx)
	return idx, nil
}

// Indexes 包含主键
func (t *Table) Indexes() []*Index {
	return t.indexes
}

func (t *Table) newIndex(name string, kind IndexKind, columns []*Column) (*Index, error) {
	if len(columns) == 0 {
		return nil, dberr.NewInvalidArgument(name, "columns")
	}
	ordinals := make([]int, 0, len(columns))
	for _, c := range columns {
		if !t.owns(c) {
			return nil, dberr.NewInvalidArgument(c, "columns")
		}
		ordinals = append(ordinals, c.id.Ordinal)
	}
	return &Index{name: name, kind: kind, table: t, ordinals: ordinals}, nil
}

func (t *Table) Kind() Kind {
	return KindTable
}

func (t *Table) Database() *Database {
	return t.db
}

func (t *Table) object() {}

func (t *Table) String() string {
	return t.name
}

// IndexKind 索引类型
type IndexKind int

const (
	IndexStandard IndexKind = iota
	IndexUnique
	IndexPrimaryKey
)

// Index 保存所属表中列的序号
type Index struct {
	name     string
	kind     IndexKind
	table    *Table
	ordinals []int
}

func (i *Index) Name() string {
	return i.name
}

func (i *Index) Kind() IndexKind {
	return i.kind
}

func (i *Index) Table() *Table {
	return i.table
}

// Columns 按索引定义的顺序返回
func (i *Index) Columns() []*Column {
	columns := make([]*Column, len(i.ordinals))
	for n, ordinal := range i.ordinals {
		columns[n] = i.table.columns[ordinal]
	}
	return columns
}

// Position 列在索引中的位置，不在索引中返回 -1
func (i *Index) Position(c *Column) int {
	if !i.table.owns(c) {
		return -1
	}
	for n, ordinal := range i.ordinals {
		if ordinal == c.id.Ordinal {
			return n
		}
	}
	return -1
}
