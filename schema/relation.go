package schema

import (
	"github.com/hatlonely/dbx/dberr"
)

// Reference 外键列到被引用列
type Reference struct {
	Source ColumnID
	Target ColumnID
}

// Relation 外键约束，所有 Source 属于同一张表，所有 Target 属于同一张表，两张表可以相同
type Relation struct {
	name       string
	references []Reference
	db         *Database
}

func (r *Relation) Name() string {
	return r.name
}

func (r *Relation) References() []Reference {
	return r.references
}

func (r *Relation) SourceTable() *Table {
	return r.db.Table(r.references[0].Source.Table)
}

func (r *Relation) TargetTable() *Table {
	return r.db.Table(r.references[0].Target.Table)
}

func (r *Relation) SourceColumns() []*Column {
	columns := make([]*Column, len(r.references))
	for i, ref := range r.references {
		columns[i] = r.db.Column(ref.Source)
	}
	return columns
}

func (r *Relation) TargetColumns() []*Column {
	columns := make([]*Column, len(r.references))
	for i, ref := range r.references {
		columns[i] = r.db.Column(ref.Target)
	}
	return columns
}

func (r *Relation) Kind() Kind {
	return KindRelation
}

func (r *Relation) Database() *Database {
	return r.db
}

func (r *Relation) object() {}

func (r *Relation) String() string {
	return r.name
}

func newRelation(db *Database, name string, references []Reference) (*Relation, error) {
	if name == "" {
		return nil, dberr.NewInvalidArgument(name, "name")
	}
	if len(references) == 0 {
		return nil, dberr.NewInvalidArgument(name, "references")
	}

	first := references[0]
	for _, ref := range references {
		if db.Column(ref.Source) == nil || db.Column(ref.Target) == nil {
			return nil, dberr.NewInvalidArgument(name, "references")
		}
		if ref.Source.Table != first.Source.Table || ref.Target.Table != first.Target.Table {
			return nil, dberr.NewInvalidArgument(name, "references")
		}
	}

	return &Relation{
		name:       name,
		references: append([]Reference(nil), references...),
		db:         db,
	}, nil
}
