package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hatlonely/dbx/dberr"
	"github.com/hatlonely/dbx/log"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/vjeantet/jodaTime"
)

// Validate 校验并转换列值，返回可以写入数据库的值
//
// 字符串形式的日期、数字会转换为 time.Time、decimal.Decimal、float64、int64，
// 已经是目标类型的值原样返回，所以对返回值再次校验结果不变
func (c *Column) Validate(value any) (any, error) {
	if (c.IsRequired() || c.IsAutoGenerated()) && isEmpty(value) {
		return nil, dberr.NewFieldNotNull(c.name)
	}

	switch c.dataType {
	case TypeDate, TypeDateTime:
		return c.validateDate(value)
	case TypeDecimal, TypeDouble, TypeInteger:
		if value == nil {
			return nil, nil
		}
		if !isNumber(value) {
			converted, err := c.parseNumber(value)
			if err != nil {
				return nil, c.illegalValue(value, c.dataType.String(), err)
			}
			value = converted
		}
		d, err := toDecimal(value)
		if err != nil {
			return nil, c.illegalValue(value, c.dataType.String(), err)
		}
		if err := c.validateNumber(d); err != nil {
			return nil, err
		}
		return value, nil
	case TypeText, TypeChar:
		if value != nil && utf8.RuneCountInString(cast.ToString(value)) > int(c.size) {
			return nil, dberr.NewFieldValueTooLong(c.name, int(c.size))
		}
		return value, nil
	default:
		log.Default().Debug("no column validation has been implemented", "column", c.String(), "type", c.dataType.String())
		return value, nil
	}
}

func (c *Column) validateDate(value any) (any, error) {
	switch value.(type) {
	case nil, time.Time, *time.Time, SysDateValue:
		return value, nil
	}

	text := fmt.Sprint(value)
	if text == "" {
		return nil, nil
	}

	pattern := cast.ToString(c.attributes[AttrDateTimePattern])
	if pattern == "" {
		pattern = DefaultDateTimePattern
	}
	if idx := strings.Index(pattern, " "); idx > 0 && (c.dataType == TypeDate || len(text) <= 12) {
		pattern = pattern[:idx]
		// 只取日期部分，忽略后面的时间
		if end := strings.Index(text, " "); end > 0 {
			text = text[:end]
		}
	}

	t, err := jodaTime.Parse(pattern, text)
	if err != nil {
		return nil, c.illegalValue(value, "Date ("+pattern+")", err)
	}
	return t, nil
}

// validateNumber 检查 min/max 属性，DECIMAL 额外检查整数位数和小数位数
func (c *Column) validateNumber(d decimal.Decimal) error {
	lo, hasMin, err := c.bound(AttrMinValue)
	if err != nil {
		return err
	}
	hi, hasMax, err := c.bound(AttrMaxValue)
	if err != nil {
		return err
	}

	n := d.IntPart()
	switch {
	case hasMin && hasMax:
		if n < lo || n > hi {
			return dberr.NewFieldValueOutOfRangeBoth(c.name, lo, hi)
		}
	case hasMin:
		if n < lo {
			return dberr.NewFieldValueOutOfRangeMin(c.name, lo)
		}
	case hasMax:
		if n > hi {
			return dberr.NewFieldValueOutOfRangeMax(c.name, hi)
		}
	}

	if c.dataType == TypeDecimal {
		precision := d.NumDigits()
		scale := int(-d.Exponent())
		if precision-scale > c.Precision()-c.scale || scale > c.scale {
			return dberr.NewFieldValueOutOfRange(c.name)
		}
	}
	return nil
}

func (c *Column) bound(key string) (int64, bool, error) {
	v, ok := c.attributes[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return 0, false, dberr.NewInvalidArgument(v, key)
	}
	return n, true, nil
}

func (c *Column) illegalValue(value any, target string, err error) error {
	log.Default().Info("parsing value failed", "column", c.String(), "value", value, "target", target, "error", err)
	return dberr.NewFieldIllegalValue(c.name, fmt.Sprint(value), err)
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	s, ok := value.(string)
	return ok && s == ""
}

func isNumber(value any) bool {
	switch value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, decimal.Decimal:
		return true
	}
	return false
}

// parseNumber 把非数字类型的值转换为列类型对应的数字，与 locale 无关
func (c *Column) parseNumber(value any) (any, error) {
	switch c.dataType {
	case TypeDecimal:
		return toDecimal(value)
	case TypeDouble:
		return toFloat64(value)
	default:
		return toInt64(value)
	}
}

func toDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return decimal.Zero, errors.Errorf("%v is not a finite number", v)
		}
		return decimal.NewFromFloat32(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, errors.Errorf("%v is not a finite number", v)
		}
		return decimal.NewFromFloat(v), nil
	case int, int8, int16, int32, int64:
		return decimal.NewFromInt(cast.ToInt64(v)), nil
	case uint, uint8, uint16, uint32, uint64:
		return decimal.NewFromString(cast.ToString(v))
	case string:
		return decimal.NewFromString(strings.TrimSpace(v))
	}
	return decimal.NewFromString(fmt.Sprint(value))
}

func toFloat64(value any) (float64, error) {
	if s, ok := value.(string); ok {
		return strconv.ParseFloat(strings.TrimSpace(s), 64)
	}
	return cast.ToFloat64E(value)
}

func toInt64(value any) (int64, error) {
	if s, ok := value.(string); ok {
		return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	}
	return cast.ToInt64E(value)
}
