package sequence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/hatlonely/dbx/script"
	"github.com/pkg/errors"
)

// TableOptions 序列表生成器配置，序列表的结构为
// (SeqName VARCHAR(40) NOT NULL, SeqValue BIGINT NOT NULL, udpTimestamp DATETIME NOT NULL, PRIMARY KEY (SeqName))
type TableOptions struct {
	DB script.DBOptions `cfg:"db"`

	// Table 序列表名
	Table string `cfg:"table" def:"Sequences"`

	// MaxRetries 并发更新冲突时的重试次数
	MaxRetries int `cfg:"maxRetries" def:"10"`
}

// TableGenerator 在序列表中保存每个序列的当前值，用乐观锁更新
type TableGenerator struct {
	db         *sql.DB
	table      string
	quoted     string
	maxRetries int
	owned      bool
}

// NewTableGenerator 使用已经打开的连接，Close 不会关闭 db
//
// 表名不是普通标识符时用双引号括起来，保留字等方言相关的规则通过 WithQuote 指定
func NewTableGenerator(db *sql.DB, table string) *TableGenerator {
	if table == "" {
		table = "Sequences"
	}
	g := &TableGenerator{db: db, table: table, maxRetries: 10}
	g.quoted = quoteIdentifier(table, `"`, `"`)
	return g
}

// WithQuote 使用 quote 生成 SQL 中的表名，例如方言驱动的 QuoteName
func (g *TableGenerator) WithQuote(quote func(name string) string) *TableGenerator {
	if quote != nil {
		g.quoted = quote(g.table)
	}
	return g
}

// Table 序列表名
func (g *TableGenerator) Table() string {
	return g.table
}

func quoteIdentifier(name string, open string, end string) string {
	for i, ch := range name {
		switch {
		case ch == '_', ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9' && i > 0:
		default:
			return open + strings.ReplaceAll(name, end, end+end) + end
		}
	}
	return name
}

func NewTableGeneratorWithOptions(options *TableOptions) (*TableGenerator, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	db, err := script.OpenDB(&options.DB)
	if err != nil {
		return nil, errors.WithMessage(err, "script.OpenDB failed")
	}

	g := NewTableGenerator(db, options.Table)
	if options.DB.Driver == "mysql" {
		g.quoted = quoteIdentifier(g.table, "`", "`")
	}
	if options.MaxRetries > 0 {
		g.maxRetries = options.MaxRetries
	}
	g.owned = true
	return g, nil
}

func (g *TableGenerator) Next(ctx context.Context, name string, minValue int64) (int64, error) {
	var lastErr error
	for i := 0; i < g.maxRetries; i++ {
		var current int64
		err := g.db.QueryRowContext(ctx, "SELECT SeqValue FROM "+g.quoted+" WHERE SeqName = ?", name).Scan(&current)
		if errors.Is(err, sql.ErrNoRows) {
			_, err = g.db.ExecContext(ctx,
				"INSERT INTO "+g.quoted+" (SeqName, SeqValue, udpTimestamp) VALUES (?, ?, ?)",
				name, minValue, time.Now())
			if err == nil {
				return minValue, nil
			}
			// 其他连接可能已经插入了同名序列，重新读取
			lastErr = err
			continue
		}
		if err != nil {
			return 0, errors.Wrapf(err, "query sequence %s failed", name)
		}

		next := current + 1
		if next < minValue {
			next = minValue
		}
		res, err := g.db.ExecContext(ctx,
			"UPDATE "+g.quoted+" SET SeqValue = ?, udpTimestamp = ? WHERE SeqName = ? AND SeqValue = ?",
			next, time.Now(), name, current)
		if err != nil {
			return 0, errors.Wrapf(err, "update sequence %s failed", name)
		}
		if n, err := res.RowsAffected(); err == nil && n == 1 {
			return next, nil
		}
		lastErr = errors.Errorf("sequence %s was updated concurrently", name)
	}
	return 0, errors.WithMessagef(lastErr, "next value of sequence %s failed after %d attempts", name, g.maxRetries)
}

// Close 只关闭由 NewTableGeneratorWithOptions 打开的连接
func (g *TableGenerator) Close() error {
	if !g.owned {
		return nil
	}
	return g.db.Close()
}
