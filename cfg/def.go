package cfg

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// SetDefaults 按 def tag 为零值字段设置默认值，嵌套结构体递归处理，nil 指针保持不变
func SetDefaults(object any) error {
	rv := reflect.ValueOf(object)
	if !rv.IsValid() || rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("object must be a non-nil pointer")
	}
	return setDefaults(rv.Elem())
}

func setDefaults(rv reflect.Value) error {
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct || rv.Type() == timeType {
		return nil
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		value := rv.Field(i)
		if !value.CanSet() {
			continue
		}

		if err := setDefaults(value); err != nil {
			return errors.WithMessagef(err, "field %s", field.Name)
		}

		def, ok := field.Tag.Lookup("def")
		if !ok || !value.IsZero() {
			continue
		}
		if err := convert(defaultValue(value, def), value); err != nil {
			return errors.WithMessagef(err, "invalid default value %q for field %s", def, field.Name)
		}
	}
	return nil
}

// defaultValue 切片类型的默认值用逗号分隔
func defaultValue(value reflect.Value, def string) any {
	if value.Kind() == reflect.Slice {
		items := make([]any, 0)
		for _, s := range strings.Split(def, ",") {
			items = append(items, strings.TrimSpace(s))
		}
		return items
	}
	return def
}
