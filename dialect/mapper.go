package dialect

import (
	"math"
	"strconv"
	"strings"

	"github.com/hatlonely/dbx/schema"
)

// AppendColumnDesc 追加列定义 "name type [DEFAULT v] [NOT NULL]"，UNKNOWN 类型什么都不追加并返回 false
func (d *Driver) AppendColumnDesc(sb *strings.Builder, c *schema.Column) bool {
	typ, ok := d.columnType(c)
	if !ok {
		d.logger.Error("cannot append column of data type UNKNOWN", "column", c.String())
		return false
	}

	sb.WriteString(d.QuoteName(c.Name()))
	sb.WriteByte(' ')
	sb.WriteString(typ)

	if d.ddlColumnDefaults && !c.IsAutoGenerated() && c.DefaultValue() != nil {
		sb.WriteString(" DEFAULT ")
		sb.WriteString(d.ValueString(c.DefaultValue(), c.DataType()))
	}
	if c.IsRequired() || c.IsAutoGenerated() {
		sb.WriteString(" NOT NULL")
	}
	return true
}

func (d *Driver) columnType(c *schema.Column) (string, bool) {
	size := c.Size()
	switch c.DataType() {
	case schema.TypeInteger:
		if size >= 8 {
			return "BIGINT", true
		}
		return "INT", true
	case schema.TypeAutoInc:
		if d.useSequenceTable {
			return "INT", true
		}
		return "INT AUTO_INCREMENT", true
	case schema.TypeText:
		return "VARCHAR(" + strconv.Itoa(lengthOr(size, 100)) + ")", true
	case schema.TypeChar:
		return "CHAR(" + strconv.Itoa(lengthOr(size, 1)) + ")", true
	case schema.TypeDate:
		return "DATE", true
	case schema.TypeDateTime:
		return "DATETIME", true
	case schema.TypeBool:
		return "BIT", true
	case schema.TypeDouble:
		return "DOUBLE", true
	case schema.TypeDecimal:
		return "DECIMAL(" + strconv.Itoa(c.Precision()) + "," + strconv.Itoa(c.DecimalScale()) + ")", true
	case schema.TypeClob:
		return "LONGTEXT", true
	case schema.TypeBlob:
		if size > 0 {
			return d.profile.BlobType + " (" + strconv.FormatInt(int64(size), 10) + ")", true
		}
		return d.profile.BlobType, true
	case schema.TypeUniqueID:
		return "CHAR(36)", true
	}
	return "", false
}

func lengthOr(size float64, def int) int {
	if n := int(math.Abs(size)); n != 0 {
		return n
	}
	return def
}
