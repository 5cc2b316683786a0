package dberr

import "fmt"

// Bound 越界类型
type Bound int

const (
	// BoundNone 精度或小数位越界，没有具体边界
	BoundNone Bound = iota
	BoundMin
	BoundMax
	BoundBoth
)

func (b Bound) String() string {
	switch b {
	case BoundMin:
		return "min"
	case BoundMax:
		return "max"
	case BoundBoth:
		return "both"
	default:
		return "none"
	}
}

// FieldNotNullError 必填列的值为空
type FieldNotNullError struct {
	Column string
}

func NewFieldNotNull(column string) *FieldNotNullError {
	return &FieldNotNullError{Column: column}
}

func (e *FieldNotNullError) Error() string {
	return fmt.Sprintf("field %s must not be null", e.Column)
}

func (e *FieldNotNullError) Is(target error) bool {
	return target == ErrFieldNotNull
}

// FieldIllegalValueError 值无法转换为列类型
type FieldIllegalValueError struct {
	Column string
	Value  string
	Err    error
}

func NewFieldIllegalValue(column string, value string, err error) *FieldIllegalValueError {
	return &FieldIllegalValueError{Column: column, Value: value, Err: err}
}

func (e *FieldIllegalValueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("illegal value %q for field %s: %v", e.Value, e.Column, e.Err)
	}
	return fmt.Sprintf("illegal value %q for field %s", e.Value, e.Column)
}

func (e *FieldIllegalValueError) Unwrap() error {
	return e.Err
}

func (e *FieldIllegalValueError) Is(target error) bool {
	return target == ErrFieldIllegalValue
}

// FieldValueTooLongError 文本长度超过列宽
type FieldValueTooLongError struct {
	Column string
	Size   int
}

func NewFieldValueTooLong(column string, size int) *FieldValueTooLongError {
	return &FieldValueTooLongError{Column: column, Size: size}
}

func (e *FieldValueTooLongError) Error() string {
	return fmt.Sprintf("value of field %s exceeds max length %d", e.Column, e.Size)
}

func (e *FieldValueTooLongError) Is(target error) bool {
	return target == ErrFieldValueTooLong
}

// FieldValueOutOfRangeError 数值越界，Bound 为 BoundNone 时表示精度或小数位不满足列定义
type FieldValueOutOfRangeError struct {
	Column string
	Min    int64
	Max    int64
	Bound  Bound
}

func NewFieldValueOutOfRange(column string) *FieldValueOutOfRangeError {
	return &FieldValueOutOfRangeError{Column: column, Bound: BoundNone}
}

func NewFieldValueOutOfRangeBoth(column string, min, max int64) *FieldValueOutOfRangeError {
	return &FieldValueOutOfRangeError{Column: column, Min: min, Max: max, Bound: BoundBoth}
}

func NewFieldValueOutOfRangeMin(column string, min int64) *FieldValueOutOfRangeError {
	return &FieldValueOutOfRangeError{Column: column, Min: min, Bound: BoundMin}
}

func NewFieldValueOutOfRangeMax(column string, max int64) *FieldValueOutOfRangeError {
	return &FieldValueOutOfRangeError{Column: column, Max: max, Bound: BoundMax}
}

func (e *FieldValueOutOfRangeError) Error() string {
	switch e.Bound {
	case BoundBoth:
		return fmt.Sprintf("value of field %s must be between %d and %d", e.Column, e.Min, e.Max)
	case BoundMin:
		return fmt.Sprintf("value of field %s must not be less than %d", e.Column, e.Min)
	case BoundMax:
		return fmt.Sprintf("value of field %s must not be greater than %d", e.Column, e.Max)
	default:
		return fmt.Sprintf("value of field %s is out of range", e.Column)
	}
}

func (e *FieldValueOutOfRangeError) Is(target error) bool {
	return target == ErrFieldValueOutOfRange
}
