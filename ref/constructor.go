package ref

import (
	"reflect"

	"github.com/pkg/errors"
)

// Convertable 配置数据，能够转换为构造函数期望的参数类型
type Convertable interface {
	// ConvertTo object 为指向目标对象的指针
	ConvertTo(object any) error
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructor 支持 func() T, func() (T, error), func(O) T, func(O) (T, error) 四种形式
type constructor struct {
	fn           reflect.Value
	paramType    reflect.Type
	returnsError bool
}

func newConstructor(fn any) (*constructor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, errors.Errorf("constructor must be a function, got %T", fn)
	}

	t := v.Type()
	if t.NumIn() > 1 {
		return nil, errors.Errorf("constructor must have 0 or 1 input parameters, got %d", t.NumIn())
	}
	if t.NumOut() != 1 && t.NumOut() != 2 {
		return nil, errors.Errorf("constructor must have 1 or 2 return values, got %d", t.NumOut())
	}
	if t.NumOut() == 2 && !t.Out(1).Implements(errorType) {
		return nil, errors.New("second return value must be error type")
	}

	c := &constructor{fn: v, returnsError: t.NumOut() == 2}
	if t.NumIn() == 1 {
		c.paramType = t.In(0)
	}
	return c, nil
}

func (c *constructor) call(options any) (any, error) {
	var args []reflect.Value
	if c.paramType != nil {
		arg, err := c.argument(options)
		if err != nil {
			return nil, err
		}
		args = []reflect.Value{arg}
	}

	out := c.fn.Call(args)
	if c.returnsError && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// argument 把 options 变成构造函数的参数，nil 对应参数类型的零值
func (c *constructor) argument(options any) (reflect.Value, error) {
	if options == nil {
		return reflect.Zero(c.paramType), nil
	}

	if conv, ok := options.(Convertable); ok && !reflect.TypeOf(options).AssignableTo(c.paramType) {
		return convert(conv, c.paramType)
	}

	v := reflect.ValueOf(options)
	switch {
	case v.Type().AssignableTo(c.paramType):
		return v, nil
	case c.paramType.Kind() == reflect.Ptr && v.Type().AssignableTo(c.paramType.Elem()):
		p := reflect.New(c.paramType.Elem())
		p.Elem().Set(v)
		return p, nil
	case v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Type().AssignableTo(c.paramType):
		return v.Elem(), nil
	}
	return reflect.Value{}, errors.Errorf("options of type %T cannot be used as %v", options, c.paramType)
}

func convert(conv Convertable, paramType reflect.Type) (reflect.Value, error) {
	if paramType.Kind() == reflect.Ptr {
		target := reflect.New(paramType.Elem())
		if err := conv.ConvertTo(target.Interface()); err != nil {
			return reflect.Value{}, errors.WithMessagef(err, "convert options to %v failed", paramType)
		}
		return target, nil
	}

	target := reflect.New(paramType)
	if err := conv.ConvertTo(target.Interface()); err != nil {
		return reflect.Value{}, errors.WithMessagef(err, "convert options to %v failed", paramType)
	}
	return target.Elem(), nil
}
