package dialect

import (
	"strings"
	"testing"

	"github.com/hatlonely/dbx/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendColumnDesc(t *testing.T) {
	h2, err := NewBuilder("h2").Build()
	require.NoError(t, err)
	mysql, err := NewBuilder("mysql").Build()
	require.NoError(t, err)
	sequences, err := NewBuilder("h2").UseSequenceTable(true).Build()
	require.NoError(t, err)
	defaults, err := NewBuilder("h2").DDLColumnDefaults(true).Build()
	require.NoError(t, err)

	tests := []struct {
		name     string
		driver   *Driver
		dataType schema.DataType
		size     float64
		mode     schema.DataMode
		defValue any
		want     string
	}{
		{"int", h2, schema.TypeInteger, 4, schema.Nullable, nil, "c INT"},
		{"bigint", h2, schema.TypeInteger, 8, schema.NotNull, nil, "c BIGINT NOT NULL"},
		{"autoinc", h2, schema.TypeAutoInc, 0, schema.AutoGenerated, nil, "c INT AUTO_INCREMENT NOT NULL"},
		{"autoinc with sequence table", sequences, schema.TypeAutoInc, 0, schema.AutoGenerated, nil, "c INT NOT NULL"},
		{"integer auto generated", h2, schema.TypeInteger, 4, schema.AutoGenerated, nil, "c INT AUTO_INCREMENT NOT NULL"},
		{"text", h2, schema.TypeText, 50, schema.NotNull, nil, "c VARCHAR(50) NOT NULL"},
		{"text single byte", h2, schema.TypeText, -20, schema.Nullable, nil, "c VARCHAR(20)"},
		{"text default size", h2, schema.TypeText, 0, schema.Nullable, nil, "c VARCHAR(100)"},
		{"char", h2, schema.TypeChar, 2, schema.Nullable, nil, "c CHAR(2)"},
		{"char default size", h2, schema.TypeChar, 0, schema.Nullable, nil, "c CHAR(1)"},
		{"date", h2, schema.TypeDate, 0, schema.Nullable, nil, "c DATE"},
		{"datetime", h2, schema.TypeDateTime, 0, schema.Nullable, nil, "c DATETIME"},
		{"bool", h2, schema.TypeBool, 0, schema.Nullable, nil, "c BIT"},
		{"double", h2, schema.TypeDouble, 0, schema.Nullable, nil, "c DOUBLE"},
		{"decimal", h2, schema.TypeDecimal, 10.2, schema.Nullable, nil, "c DECIMAL(10,2)"},
		{"decimal scale 5", h2, schema.TypeDecimal, 8.5, schema.NotNull, nil, "c DECIMAL(8,5) NOT NULL"},
		{"clob", h2, schema.TypeClob, 0, schema.Nullable, nil, "c LONGTEXT"},
		{"blob", h2, schema.TypeBlob, 0, schema.Nullable, nil, "c BLOB"},
		{"blob with size", h2, schema.TypeBlob, 1024, schema.Nullable, nil, "c BLOB (1024)"},
		{"mysql blob", mysql, schema.TypeBlob, 0, schema.Nullable, nil, "c LONGBLOB"},
		{"uniqueid", h2, schema.TypeUniqueID, 0, schema.NotNull, nil, "c CHAR(36) NOT NULL"},
		{"defaults off", h2, schema.TypeText, 10, schema.NotNull, "x", "c VARCHAR(10) NOT NULL"},
		{"text default", defaults, schema.TypeText, 10, schema.NotNull, "it's", "c VARCHAR(10) DEFAULT 'it''s' NOT NULL"},
		{"integer default", defaults, schema.TypeInteger, 4, schema.Nullable, 3, "c INT DEFAULT 3"},
		{"bool default", defaults, schema.TypeBool, 0, schema.Nullable, true, "c BIT DEFAULT 1"},
		{"sysdate default", defaults, schema.TypeDateTime, 0, schema.NotNull, schema.SysDate, "c DATETIME DEFAULT NOW() NOT NULL"},
		{"auto generated has no default", defaults, schema.TypeAutoInc, 0, schema.AutoGenerated, "Users.id", "c INT AUTO_INCREMENT NOT NULL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := schema.NewColumn("c", tt.dataType, tt.size, tt.mode, tt.defValue)
			require.NoError(t, err)

			var sb strings.Builder
			assert.True(t, tt.driver.AppendColumnDesc(&sb, c))
			assert.Equal(t, tt.want, sb.String())
		})
	}

	t.Run("unknown", func(t *testing.T) {
		c, err := schema.NewColumn("c", schema.TypeUnknown, 0, schema.Nullable, nil)
		require.NoError(t, err)

		var sb strings.Builder
		sb.WriteString("prefix")
		assert.False(t, h2.AppendColumnDesc(&sb, c))
		assert.Equal(t, "prefix", sb.String())
	})

	t.Run("quoted name", func(t *testing.T) {
		c, err := schema.NewColumn("order", schema.TypeInteger, 4, schema.Nullable, nil)
		require.NoError(t, err)

		var sb strings.Builder
		assert.True(t, mysql.AppendColumnDesc(&sb, c))
		assert.Equal(t, "`order` INT", sb.String())
	})
}
