package dberr

import (
	"fmt"

	"github.com/pkg/errors"
)

// 错误类别，配合 errors.Is 使用
var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrNotImplemented       = errors.New("not implemented")
	ErrNotSupported         = errors.New("not supported")
	ErrPropertyReadOnly     = errors.New("property read only")
	ErrFieldNotNull         = errors.New("field not null")
	ErrFieldIllegalValue    = errors.New("field illegal value")
	ErrFieldValueTooLong    = errors.New("field value too long")
	ErrFieldValueOutOfRange = errors.New("field value out of range")
)

// InvalidArgumentError 参数为空、非法，或者对象挂在了其他驱动上
type InvalidArgumentError struct {
	Object any
	Param  string
}

func NewInvalidArgument(object any, param string) *InvalidArgumentError {
	return &InvalidArgumentError{Object: object, Param: param}
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %v", e.Param, e.Object)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NotImplementedError 没有对应生成规则的操作
type NotImplementedError struct {
	Operation string
}

func NewNotImplemented(format string, args ...any) *NotImplementedError {
	return &NotImplementedError{Operation: fmt.Sprintf(format, args...)}
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s", e.Operation)
}

func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// NotSupportedError 当前对象状态下不支持的操作，例如非 DECIMAL 列设置精度
type NotSupportedError struct {
	Object    string
	Operation string
}

func NewNotSupported(object string, operation string) *NotSupportedError {
	return &NotSupportedError{Object: object, Operation: operation}
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("operation %s is not supported on %s", e.Operation, e.Object)
}

func (e *NotSupportedError) Is(target error) bool {
	return target == ErrNotSupported
}

// PropertyReadOnlyError 属性只读
type PropertyReadOnlyError struct {
	Property string
}

func NewPropertyReadOnly(property string) *PropertyReadOnlyError {
	return &PropertyReadOnlyError{Property: property}
}

func (e *PropertyReadOnlyError) Error() string {
	return fmt.Sprintf("property %s is read only", e.Property)
}

func (e *PropertyReadOnlyError) Is(target error) bool {
	return target == ErrPropertyReadOnly
}
