package ref

import (
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// TypeOptions 通过配置描述一个对象：命名空间、类型和构造参数
type TypeOptions struct {
	Namespace string `cfg:"namespace"`
	Type      string `cfg:"type"`
	Options   any    `cfg:"options"`
}

type entry struct {
	fn          any
	constructor *constructor
}

var registry sync.Map

func key(namespace string, typ string) string {
	return namespace + ":" + typ
}

// Register 注册构造函数，同一个函数重复注册会被忽略，不同函数注册同一个名字返回错误
func Register(namespace string, typ string, fn any) error {
	c, err := newConstructor(fn)
	if err != nil {
		return errors.WithMessagef(err, "register %s:%s failed", namespace, typ)
	}

	actual, loaded := registry.LoadOrStore(key(namespace, typ), &entry{fn: fn, constructor: c})
	if loaded && reflect.ValueOf(actual.(*entry).fn).Pointer() != reflect.ValueOf(fn).Pointer() {
		return errors.Errorf("constructor for %s:%s already registered with different function", namespace, typ)
	}
	return nil
}

// RegisterT 以 T 的包路径和类型名作为命名空间和类型注册
func RegisterT[T any](fn any) error {
	namespace, typ, err := typeName[T]()
	if err != nil {
		return err
	}
	return Register(namespace, typ, fn)
}

func MustRegister(namespace string, typ string, fn any) {
	if err := Register(namespace, typ, fn); err != nil {
		panic(err)
	}
}

func MustRegisterT[T any](fn any) {
	if err := RegisterT[T](fn); err != nil {
		panic(err)
	}
}

// New 调用注册的构造函数，options 可以是参数类型本身、参数类型的值或指针，或者 Convertable
func New(namespace string, typ string, options any) (any, error) {
	v, ok := registry.Load(key(namespace, typ))
	if !ok {
		return nil, errors.Errorf("constructor not found for %s:%s", namespace, typ)
	}
	obj, err := v.(*entry).constructor.call(options)
	if err != nil {
		return nil, errors.WithMessagef(err, "new %s:%s failed", namespace, typ)
	}
	return obj, nil
}

func NewT[T any](options any) (T, error) {
	var zero T
	namespace, typ, err := typeName[T]()
	if err != nil {
		return zero, err
	}
	obj, err := New(namespace, typ, options)
	if err != nil {
		return zero, err
	}
	result, ok := obj.(T)
	if !ok {
		return zero, errors.Errorf("created object %T is not %T", obj, zero)
	}
	return result, nil
}

// NewWithTypeOptions 根据 TypeOptions 创建对象，并断言为 T，T 通常是接口
func NewWithTypeOptions[T any](options *TypeOptions) (T, error) {
	var zero T
	if options == nil {
		return zero, errors.New("type options cannot be nil")
	}
	obj, err := New(options.Namespace, options.Type, options.Options)
	if err != nil {
		return zero, err
	}
	result, ok := obj.(T)
	if !ok {
		return zero, errors.Errorf("%s:%s created %T, which does not implement %v", options.Namespace, options.Type, obj, reflect.TypeOf((*T)(nil)).Elem())
	}
	return result, nil
}

// Registered 返回某个命名空间下注册的所有类型，按名字排序
func Registered(namespace string) []string {
	var types []string
	prefix := namespace + ":"
	registry.Range(func(k, _ any) bool {
		s := k.(string)
		if len(s) > len(prefix) && s[:len(prefix)] == prefix {
			types = append(types, s[len(prefix):])
		}
		return true
	})
	sort.Strings(types)
	return types
}

func typeName[T any]() (string, string, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.PkgPath() == "" || t.Name() == "" {
		return "", "", errors.Errorf("cannot determine package path or type name for %v", t)
	}
	return t.PkgPath(), t.Name(), nil
}
