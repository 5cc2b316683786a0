package dialect

import (
	"reflect"
	"strings"

	"github.com/hatlonely/dbx/dberr"
	"github.com/hatlonely/dbx/phrase"
	"github.com/hatlonely/dbx/schema"
	"github.com/hatlonely/dbx/script"
)

// CmdType DDL 命令
type CmdType int

const (
	CmdCreate CmdType = iota
	CmdDrop
	CmdAlter
)

func (c CmdType) String() string {
	switch c {
	case CmdCreate:
		return "CREATE"
	case CmdDrop:
		return "DROP"
	case CmdAlter:
		return "ALTER"
	}
	return "UNKNOWN"
}

// DDLScript 生成 obj 的 DDL 语句并追加到 s
//
// obj 所属的数据库必须挂在当前驱动上。语句先写到临时脚本中，出错时 s 保持不变
func (d *Driver) DDLScript(cmd CmdType, obj schema.Object, s *script.Script) error {
	if s == nil {
		return dberr.NewInvalidArgument(nil, "script")
	}
	if !d.attached(obj) {
		return dberr.NewInvalidArgument(objectName(obj), "obj")
	}

	scratch := script.New()
	var err error
	switch o := obj.(type) {
	case *schema.Database:
		err = d.databaseDDL(cmd, o, scratch)
	case *schema.Table:
		err = d.tableDDL(cmd, o, scratch)
	case *schema.View:
		err = d.viewDDL(cmd, o, scratch)
	case *schema.Relation:
		err = d.relationDDL(cmd, o, scratch)
	case *schema.Column:
		err = d.columnDDL(cmd, o, scratch)
	default:
		err = dberr.NewInvalidArgument(obj.Name(), "obj")
	}
	if err != nil {
		d.logger.Warn("generate ddl failed", "command", cmd.String(), "object", obj.Kind().String(), "name", obj.Name(), "error", err)
		return err
	}

	s.Append(scratch)
	ddlStatements.WithLabelValues(d.Name(), cmd.String(), obj.Kind().String()).Add(float64(scratch.Len()))
	return nil
}

// DropObject 追加 DROP <objType> <name>，name 为空时返回 InvalidArgument
func (d *Driver) DropObject(objType string, name string, s *script.Script) error {
	if s == nil {
		return dberr.NewInvalidArgument(nil, "script")
	}
	if err := d.dropObject(objType, name, s); err != nil {
		return err
	}
	ddlStatements.WithLabelValues(d.Name(), CmdDrop.String(), objType).Inc()
	return nil
}

// SequenceTable 序列表的定义，不属于任何挂在驱动上的数据库
func (d *Driver) SequenceTable(schemaName string) (*schema.Table, error) {
	db := schema.NewDatabase(schemaName)
	t, err := db.AddTable(d.sequenceTableName)
	if err != nil {
		return nil, err
	}
	name, err := t.AddColumn("SeqName", schema.TypeText, 40, schema.NotNull, nil)
	if err != nil {
		return nil, err
	}
	if _, err := t.AddColumn("SeqValue", schema.TypeInteger, 8, schema.NotNull, nil); err != nil {
		return nil, err
	}
	if _, err := t.AddColumn("udpTimestamp", schema.TypeDateTime, 0, schema.NotNull, nil); err != nil {
		return nil, err
	}
	if err := t.SetPrimaryKey(name); err != nil {
		return nil, err
	}
	return t, nil
}

func (d *Driver) attached(obj schema.Object) bool {
	if obj == nil || reflect.ValueOf(obj).IsNil() {
		return false
	}
	db := obj.Database()
	return db != nil && db.Driver() == schema.Driver(d)
}

func objectName(obj schema.Object) any {
	if obj == nil || reflect.ValueOf(obj).IsNil() {
		return nil
	}
	return obj.Name()
}

func notImplemented(obj schema.Object, cmd CmdType) error {
	return dberr.NewNotImplemented("ddl.%s.%s", obj.Kind().String(), cmd.String())
}

func (d *Driver) databaseDDL(cmd CmdType, db *schema.Database, s *script.Script) error {
	switch cmd {
	case CmdCreate:
		return d.createDatabase(db, s)
	case CmdDrop:
		name := db.Schema()
		if name == "" {
			name = d.databaseName
		}
		return d.dropObject(d.profile.DropDatabase, name, s)
	}
	return notImplemented(db, cmd)
}

func (d *Driver) tableDDL(cmd CmdType, t *schema.Table, s *script.Script) error {
	switch cmd {
	case CmdCreate:
		d.createTable(t, s)
		return nil
	case CmdDrop:
		return d.dropObject("TABLE", t.Name(), s)
	}
	return notImplemented(t, cmd)
}

func (d *Driver) viewDDL(cmd CmdType, v *schema.View, s *script.Script) error {
	switch cmd {
	case CmdCreate:
		return d.createView(v, s)
	case CmdDrop:
		return d.dropObject("VIEW", v.Name(), s)
	}
	return notImplemented(v, cmd)
}

func (d *Driver) relationDDL(cmd CmdType, r *schema.Relation, s *script.Script) error {
	switch cmd {
	case CmdCreate:
		d.createRelation(r, s)
		return nil
	case CmdDrop:
		s.Add("ALTER TABLE " + d.QualifiedName(r.SourceTable()) + " " + d.profile.DropForeignKey + " " + d.QuoteName(r.Name()))
		return nil
	}
	return notImplemented(r, cmd)
}

// columnDDL UNKNOWN 类型的列不生成语句
func (d *Driver) columnDDL(cmd CmdType, c *schema.Column, s *script.Script) error {
	var sb strings.Builder
	sb.WriteString("ALTER TABLE ")
	sb.WriteString(d.QualifiedName(c.Table()))

	switch cmd {
	case CmdCreate, CmdAlter:
		if cmd == CmdCreate {
			sb.WriteString(" ADD ")
		} else {
			sb.WriteString(" " + d.profile.AlterColumn + " ")
		}
		if d.AppendColumnDesc(&sb, c) {
			s.Add(sb.String())
		}
		return nil
	case CmdDrop:
		sb.WriteString(" DROP COLUMN ")
		sb.WriteString(d.QuoteName(c.Name()))
		s.Add(sb.String())
		return nil
	}
	return notImplemented(c, cmd)
}

func (d *Driver) createDatabase(db *schema.Database, s *script.Script) error {
	if d.databaseName != "" {
		name := d.QuoteName(d.databaseName)
		s.Add(phrase.Format(d.profile.CreateDatabase, "", name))
		s.Add(phrase.Format(d.profile.UseDatabase, "", name))
	}

	if d.useSequenceTable && db.TableByName(d.sequenceTableName) == nil {
		t, err := d.SequenceTable(db.Schema())
		if err != nil {
			return err
		}
		d.createTable(t, s)
	}

	for _, t := range db.Tables() {
		d.createTable(t, s)
	}
	for _, r := range db.Relations() {
		d.createRelation(r, s)
	}
	for _, v := range db.Views() {
		if err := d.createView(v, s); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) createTable(t *schema.Table, s *script.Script) {
	var sb strings.Builder
	sb.WriteString("-- creating table ")
	sb.WriteString(t.Name())
	sb.WriteString(" --\n")
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(d.QualifiedName(t))
	sb.WriteString(" (")

	rendered := map[*schema.Column]bool{}
	for _, c := range t.Columns() {
		var desc strings.Builder
		if !d.AppendColumnDesc(&desc, c) {
			continue
		}
		if len(rendered) > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString("\n   ")
		sb.WriteString(desc.String())
		rendered[c] = true
	}

	// 主键只包含实际创建的列
	pk := t.PrimaryKey()
	if pk != nil {
		var keys []*schema.Column
		for _, c := range pk.Columns() {
			if rendered[c] {
				keys = append(keys, c)
			}
		}
		if len(keys) > 0 {
			sb.WriteString(", PRIMARY KEY (")
			sb.WriteString(d.columnList(keys))
			sb.WriteByte(')')
		}
	}
	sb.WriteByte(')')

	if comment := t.Comment(); comment != "" {
		sb.WriteString(" COMMENT = ")
		sb.WriteString(d.textString(comment))
	}
	s.Add(sb.String())

	for _, idx := range t.Indexes() {
		if idx == pk || idx.Kind() == schema.IndexPrimaryKey {
			continue
		}
		sb.Reset()
		if idx.Kind() == schema.IndexUnique {
			sb.WriteString("CREATE UNIQUE INDEX ")
		} else {
			sb.WriteString("CREATE INDEX ")
		}
		sb.WriteString(d.QuoteName(idx.Name()))
		sb.WriteString(" ON ")
		sb.WriteString(d.QualifiedName(t))
		sb.WriteString(" (")
		sb.WriteString(d.columnList(idx.Columns()))
		sb.WriteByte(')')
		s.Add(sb.String())
	}
}

func (d *Driver) createRelation(r *schema.Relation, s *script.Script) {
	var sb strings.Builder
	sb.WriteString("-- creating foreign key constraint ")
	sb.WriteString(r.Name())
	sb.WriteString(" --\n")
	sb.WriteString("ALTER TABLE ")
	sb.WriteString(d.QualifiedName(r.SourceTable()))
	sb.WriteString(" ADD CONSTRAINT ")
	sb.WriteString(d.QuoteName(r.Name()))
	sb.WriteString(" FOREIGN KEY (")
	sb.WriteString(d.columnList(r.SourceColumns()))
	sb.WriteString(") REFERENCES ")
	sb.WriteString(d.QualifiedName(r.TargetTable()))
	sb.WriteString(" (")
	sb.WriteString(d.columnList(r.TargetColumns()))
	sb.WriteByte(')')
	s.Add(sb.String())
}

func (d *Driver) createView(v *schema.View, s *script.Script) error {
	cmd := v.CreateCommand()
	if cmd == nil {
		d.logger.Error("no command has been supplied for view", "view", v.Name())
		return dberr.NewNotImplemented("%s.createCommand", v.Name())
	}
	// 视图定义中不能有 ORDER BY，在副本上清除，不影响调用方的查询
	cmd = cmd.Clone()
	cmd.ClearOrderBy()

	var sb strings.Builder
	sb.WriteString("CREATE VIEW ")
	sb.WriteString(d.qualify(v.Database(), v.Name()))
	sb.WriteString(" (")
	for i, c := range v.Columns() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.QuoteName(c.Name))
	}
	sb.WriteString(")\nAS\n")
	sb.WriteString(cmd.SQL())
	s.Add(sb.String())
	return nil
}

func (d *Driver) dropObject(objType string, name string, s *script.Script) error {
	if name == "" {
		return dberr.NewInvalidArgument(name, "name")
	}
	s.Add("DROP " + objType + " " + d.QuoteName(name))
	return nil
}

func (d *Driver) qualify(db *schema.Database, name string) string {
	if db != nil && db.Schema() != "" {
		return d.QuoteName(db.Schema()) + "." + d.QuoteName(name)
	}
	return d.QuoteName(name)
}

func (d *Driver) columnList(columns []*schema.Column) string {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, d.QuoteName(c.Name()))
	}
	return strings.Join(names, ", ")
}
