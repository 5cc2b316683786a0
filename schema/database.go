package schema

import (
	"github.com/hatlonely/dbx/dberr"
)

// Driver 生成 SQL 的数据库驱动，数据库只能挂到一个驱动上
type Driver interface {
	Name() string
}

// Kind 对象类型
type Kind int

const (
	KindDatabase Kind = iota
	KindTable
	KindView
	KindRelation
	KindColumn
)

func (k Kind) String() string {
	switch k {
	case KindDatabase:
		return "DATABASE"
	case KindTable:
		return "TABLE"
	case KindView:
		return "VIEW"
	case KindRelation:
		return "RELATION"
	case KindColumn:
		return "COLUMN"
	}
	return "UNKNOWN"
}

// Object 可以生成 DDL 的对象：*Database, *Table, *View, *Relation, *Column
type Object interface {
	Kind() Kind
	Name() string
	Database() *Database
	object()
}

var (
	_ Object = (*Database)(nil)
	_ Object = (*Table)(nil)
	_ Object = (*View)(nil)
	_ Object = (*Relation)(nil)
	_ Object = (*Column)(nil)
)

// Database 拥有所有的表、外键和视图，表按 TableID 寻址
type Database struct {
	schema    string
	driver    Driver
	tables    []*Table
	relations []*Relation
	views     []*View
}

// NewDatabase schema 可以为空，此时表名不带前缀
func NewDatabase(schema string) *Database {
	return &Database{schema: schema}
}

func (db *Database) Schema() string {
	return db.schema
}

// Name 即 schema 名
func (db *Database) Name() string {
	return db.schema
}

func (db *Database) Driver() Driver {
	return db.driver
}

// Attach 挂到驱动上，已经挂到其他驱动时返回 InvalidArgument
func (db *Database) Attach(driver Driver) error {
	if driver == nil {
		return dberr.NewInvalidArgument(nil, "driver")
	}
	if db.driver != nil && db.driver != driver {
		return dberr.NewInvalidArgument(db.driver.Name(), "driver")
	}
	db.driver = driver
	return nil
}

// AddTable 表名不能为空或重复
func (db *Database) AddTable(name string) (*Table, error) {
	if name == "" || db.TableByName(name) != nil {
		return nil, dberr.NewInvalidArgument(name, "name")
	}
	t := &Table{name: name, db: db, id: TableID(len(db.tables))}
	db.tables = append(db.tables, t)
	return t, nil
}

// Table id 无效时返回 nil
func (db *Database) Table(id TableID) *Table {
	if id < 0 || int(id) >= len(db.tables) {
		return nil
	}
	return db.tables[id]
}

func (db *Database) TableByName(name string) *Table {
	for _, t := range db.tables {
		if t.name == name {
			return t
		}
	}
	return nil
}

func (db *Database) Tables() []*Table {
	return db.tables
}

// Column id 无效时返回 nil
func (db *Database) Column(id ColumnID) *Column {
	t := db.Table(id.Table)
	if t == nil || id.Ordinal < 0 || id.Ordinal >= len(t.columns) {
		return nil
	}
	return t.columns[id.Ordinal]
}

// AddRelation 添加外键，名字不能为空或重复
func (db *Database) AddRelation(name string, references ...Reference) (*Relation, error) {
	for _, r := range db.relations {
		if r.name == name {
			return nil, dberr.NewInvalidArgument(name, "name")
		}
	}
	r, err := newRelation(db, name, references)
	if err != nil {
		return nil, err
	}
	db.relations = append(db.relations, r)
	return r, nil
}

func (db *Database) Relations() []*Relation {
	return db.relations
}

// AddView command 可以为 nil，此时无法生成 CREATE VIEW
func (db *Database) AddView(name string, command func() Command) (*View, error) {
	if name == "" || db.View(name) != nil {
		return nil, dberr.NewInvalidArgument(name, "name")
	}
	v := &View{name: name, command: command, db: db}
	db.views = append(db.views, v)
	return v, nil
}

func (db *Database) View(name string) *View {
	for _, v := range db.views {
		if v.name == name {
			return v
		}
	}
	return nil
}

func (db *Database) Views() []*View {
	return db.views
}

func (db *Database) Kind() Kind {
	return KindDatabase
}

// Database 返回自身
func (db *Database) Database() *Database {
	return db
}

func (db *Database) object() {}

func (db *Database) String() string {
	return db.schema
}
