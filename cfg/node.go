package cfg

import (
	"encoding/json"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Node 解码后的配置数据，实现 ref.Convertable
//
// 转换到结构体时按 cfg tag 匹配字段，没有 tag 时使用字段名，不区分大小写。
// 目标为 any 的字段会拿到一个 *Node，交给 ref.New 时再转换成构造函数的参数类型
type Node struct {
	data any
}

func NewNode(data any) *Node {
	return &Node{data: data}
}

// Data 原始数据
func (n *Node) Data() any {
	return n.data
}

// Sub 获取子节点，key 用点号分隔，数字表示数组下标，例如 "drivers.0.dialect"
func (n *Node) Sub(key string) *Node {
	if key == "" {
		return n
	}

	current := n.data
	for _, k := range strings.Split(key, ".") {
		switch v := current.(type) {
		case map[string]any:
			current = lookup(v, k)
		case []any:
			idx, err := strconv.Atoi(k)
			if err != nil || idx < 0 || idx >= len(v) {
				return NewNode(nil)
			}
			current = v[idx]
		default:
			return NewNode(nil)
		}
	}
	return NewNode(current)
}

// ConvertTo 转换为 object，然后设置默认值并校验
func (n *Node) ConvertTo(object any) error {
	rv := reflect.ValueOf(object)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("object must be a non-nil pointer")
	}
	if err := convert(n.data, rv.Elem()); err != nil {
		return err
	}
	if err := SetDefaults(object); err != nil {
		return err
	}
	return ValidateStruct(object)
}

func lookup(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

var (
	durationType = reflect.TypeOf(time.Duration(0))
	timeType     = reflect.TypeOf(time.Time{})
)

func convert(src any, dst reflect.Value) error {
	if src == nil {
		return nil
	}
	if n, ok := src.(*Node); ok {
		return convert(n.data, dst)
	}
	if number, ok := src.(json.Number); ok {
		src = number.String()
	}

	switch dst.Type() {
	case durationType:
		d, err := cast.ToDurationE(src)
		if err != nil {
			return err
		}
		dst.SetInt(int64(d))
		return nil
	case timeType:
		t, err := cast.ToTimeE(src)
		if err != nil {
			return err
		}
		dst.Set(reflect.ValueOf(t))
		return nil
	}

	switch dst.Kind() {
	case reflect.Ptr:
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return convert(src, dst.Elem())
	case reflect.Interface:
		switch src.(type) {
		case map[string]any, []any:
			src = NewNode(src)
		}
		v := reflect.ValueOf(src)
		if !v.Type().AssignableTo(dst.Type()) {
			return errors.Errorf("cannot assign %T to %v", src, dst.Type())
		}
		dst.Set(v)
		return nil
	case reflect.Struct:
		return convertStruct(src, dst)
	case reflect.Map:
		return convertMap(src, dst)
	case reflect.Slice:
		return convertSlice(src, dst)
	case reflect.String:
		s, err := cast.ToStringE(src)
		if err != nil {
			return err
		}
		dst.SetString(s)
	case reflect.Bool:
		b, err := cast.ToBoolE(src)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := cast.ToInt64E(src)
		if err != nil {
			return err
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := cast.ToUint64E(src)
		if err != nil {
			return err
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := cast.ToFloat64E(src)
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	default:
		return errors.Errorf("unsupported type %v", dst.Type())
	}
	return nil
}

func convertStruct(src any, dst reflect.Value) error {
	m, ok := src.(map[string]any)
	if !ok {
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}

	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag := strings.Split(field.Tag.Get("cfg"), ",")[0]; tag == "-" {
			continue
		} else if tag != "" {
			name = tag
		}

		value := lookup(m, name)
		if value == nil {
			continue
		}
		if err := convert(value, dst.Field(i)); err != nil {
			return errors.WithMessagef(err, "field %s", name)
		}
	}
	return nil
}

func convertMap(src any, dst reflect.Value) error {
	m, ok := src.(map[string]any)
	if !ok {
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}
	if dst.Type().Key().Kind() != reflect.String {
		return errors.Errorf("unsupported map key type %v", dst.Type().Key())
	}
	if dst.IsNil() {
		dst.Set(reflect.MakeMapWithSize(dst.Type(), len(m)))
	}
	for k, v := range m {
		elem := reflect.New(dst.Type().Elem()).Elem()
		if err := convert(v, elem); err != nil {
			return errors.WithMessagef(err, "key %s", k)
		}
		dst.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), elem)
	}
	return nil
}

func convertSlice(src any, dst reflect.Value) error {
	var items []any
	switch v := src.(type) {
	case []any:
		items = v
	case string:
		for _, s := range strings.Split(v, ",") {
			items = append(items, strings.TrimSpace(s))
		}
	default:
		return errors.Errorf("cannot convert %T to %v", src, dst.Type())
	}

	slice := reflect.MakeSlice(dst.Type(), len(items), len(items))
	for i, item := range items {
		if err := convert(item, slice.Index(i)); err != nil {
			return errors.WithMessagef(err, "index %d", i)
		}
	}
	dst.Set(slice)
	return nil
}
