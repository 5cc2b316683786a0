package schema

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/hatlonely/dbx/dberr"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// AddTableFromStruct 根据结构体定义添加表
//
// 表名取任意字段上的 table tag，没有时使用结构体名。列定义使用 dbx tag：
//
//	dbx:"column_name,type=TEXT,size=50,default=x,required,primary,autoinc,index,unique"
//
// index 和 unique 可以指定索引名，例如 unique=IDX_USER_NAME，同名索引的列按字段顺序合并。
// dbx:"-" 忽略字段，没有 tag 时使用字段名并从 Go 类型推断列类型
func (db *Database) AddTableFromStruct(v any) (*Table, error) {
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, errors.Errorf("expected struct, got %T", v)
	}

	name := rt.Name()
	for i := 0; i < rt.NumField(); i++ {
		if tag := rt.Field(i).Tag.Get("table"); tag != "" {
			name = tag
			break
		}
	}

	var defs []*fieldDef
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("dbx")
		if !field.IsExported() || tag == "-" {
			continue
		}
		def, err := parseFieldTag(field, tag)
		if err != nil {
			return nil, errors.WithMessagef(err, "field %s", field.Name)
		}
		defs = append(defs, def)
	}

	if name == "" || db.TableByName(name) != nil {
		return nil, dberr.NewInvalidArgument(name, "name")
	}
	// 全部定义成功后才加入 db.tables
	t := &Table{name: name, db: db, id: TableID(len(db.tables))}

	var primaryKey []*Column
	type indexDef struct {
		name    string
		kind    IndexKind
		columns []*Column
	}
	var indexes []*indexDef
	indexByName := map[string]*indexDef{}

	for _, def := range defs {
		c, err := t.AddColumn(def.name, def.dataType, def.size, def.mode, def.defValue)
		if err != nil {
			return nil, err
		}
		if def.primary {
			primaryKey = append(primaryKey, c)
		}
		for _, idx := range def.indexes {
			existing, ok := indexByName[idx.name]
			if !ok {
				existing = &indexDef{name: idx.name, kind: idx.kind}
				indexByName[idx.name] = existing
				indexes = append(indexes, existing)
			}
			existing.columns = append(existing.columns, c)
		}
	}

	if len(primaryKey) > 0 {
		if err := t.SetPrimaryKey(primaryKey...); err != nil {
			return nil, err
		}
	}
	for _, idx := range indexes {
		if _, err := t.AddIndex(idx.name, idx.kind, idx.columns...); err != nil {
			return nil, err
		}
	}
	db.tables = append(db.tables, t)
	return t, nil
}

type fieldIndex struct {
	name string
	kind IndexKind
}

type fieldDef struct {
	name     string
	dataType DataType
	size     float64
	mode     DataMode
	defValue any
	primary  bool
	indexes  []fieldIndex
}

func parseFieldTag(field reflect.StructField, tag string) (*fieldDef, error) {
	def := &fieldDef{name: field.Name, mode: Nullable}
	def.dataType, def.size = inferDataType(field.Type)

	parts := strings.Split(tag, ",")
	if parts[0] != "" && !strings.Contains(parts[0], "=") {
		def.name = strings.TrimSpace(parts[0])
		parts = parts[1:]
	}

	var defValue string
	hasDefault := false
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "type":
			def.dataType = ParseDataType(strings.ToUpper(value))
			if def.dataType == TypeUnknown {
				return nil, errors.Errorf("unknown data type %q", value)
			}
		case "size":
			size, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid size %q", value)
			}
			def.size = size
		case "default":
			defValue, hasDefault = value, true
		case "required", "not_null":
			def.mode = NotNull
		case "readonly":
			def.mode = ReadOnly
		case "autoinc":
			def.mode = AutoGenerated
		case "primary", "pk":
			def.primary = true
		case "index", "unique":
			idx := fieldIndex{name: value, kind: IndexStandard}
			if key == "unique" {
				idx.kind = IndexUnique
			}
			if !hasValue || value == "" {
				prefix := "IDX_"
				if key == "unique" {
					prefix = "UK_"
				}
				idx.name = prefix + def.name
			}
			def.indexes = append(def.indexes, idx)
		default:
			return nil, errors.Errorf("unknown tag option %q", part)
		}
	}

	if hasDefault {
		v, err := parseDefaultValue(defValue, def.dataType)
		if err != nil {
			return nil, errors.WithMessagef(err, "invalid default %q", defValue)
		}
		def.defValue = v
	}
	return def, nil
}

func inferDataType(t reflect.Type) (DataType, float64) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t {
	case timeType:
		return TypeDateTime, 0
	case decimalType:
		return TypeDecimal, 10.2
	}

	switch t.Kind() {
	case reflect.String:
		return TypeText, 100
	case reflect.Int64, reflect.Uint64, reflect.Int, reflect.Uint:
		return TypeInteger, 8
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TypeInteger, 4
	case reflect.Float32, reflect.Float64:
		return TypeDouble, 0
	case reflect.Bool:
		return TypeBool, 0
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return TypeBlob, 0
		}
	}
	return TypeClob, 0
}

// parseDefaultValue sysdate 表示当前时间
func parseDefaultValue(value string, dataType DataType) (any, error) {
	switch dataType {
	case TypeInteger:
		return cast.ToInt64E(value)
	case TypeDouble:
		return cast.ToFloat64E(value)
	case TypeDecimal:
		return decimal.NewFromString(value)
	case TypeBool:
		return cast.ToBoolE(value)
	case TypeDate, TypeDateTime:
		if strings.EqualFold(value, SysDate.String()) {
			return SysDate, nil
		}
		return value, nil
	}
	return strings.Trim(value, `'"`), nil
}
