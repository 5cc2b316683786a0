package schema

// ViewColumn 视图投影出的列
type ViewColumn struct {
	Name     string
	DataType DataType
}

// View 有序的投影列和定义视图的查询
type View struct {
	name    string
	columns []ViewColumn
	command func() Command
	db      *Database
}

func (v *View) Name() string {
	return v.name
}

func (v *View) Columns() []ViewColumn {
	return v.columns
}

func (v *View) AddColumn(name string, dataType DataType) *View {
	v.columns = append(v.columns, ViewColumn{Name: name, DataType: dataType})
	return v
}

// CreateCommand 每次返回新的查询，没有定义时返回 nil
func (v *View) CreateCommand() Command {
	if v.command == nil {
		return nil
	}
	return v.command()
}

func (v *View) Kind() Kind {
	return KindView
}

func (v *View) Database() *Database {
	return v.db
}

func (v *View) object() {}

func (v *View) String() string {
	return v.name
}
