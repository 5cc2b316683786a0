package script

import (
	"database/sql"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// DBOptions 执行脚本的数据库连接
type DBOptions struct {
	// Driver 数据库驱动：mysql, sqlite3
	Driver string `cfg:"driver" def:"mysql" validate:"oneof=mysql sqlite3"`

	// DSN 不为空时直接使用，忽略下面的 mysql 配置
	DSN string `cfg:"dsn"`

	Host     string `cfg:"host" def:"localhost"`
	Port     int    `cfg:"port" def:"3306"`
	Username string `cfg:"username"`
	Password string `cfg:"password"`
	Database string `cfg:"database"`
	Charset  string `cfg:"charset" def:"utf8mb4"`

	ConnMaxLifetime time.Duration `cfg:"connMaxLifetime" def:"60s"`
	MaxOpenConns    int           `cfg:"maxOpenConns" def:"10"`
	MaxIdleConns    int           `cfg:"maxIdleConns" def:"5"`
}

// FormatDSN 生成驱动对应的 DSN
func (o *DBOptions) FormatDSN() string {
	if o.DSN != "" || o.Driver == "sqlite3" {
		return o.DSN
	}

	cfg := mysql.NewConfig()
	cfg.User = o.Username
	cfg.Passwd = o.Password
	cfg.Net = "tcp"
	cfg.Addr = o.Host
	if o.Port != 0 {
		cfg.Addr = net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
	}
	cfg.DBName = o.Database
	cfg.ParseTime = true
	// DDL 脚本中可能包含多条语句
	cfg.MultiStatements = true
	if o.Charset != "" {
		cfg.Params = map[string]string{"charset": o.Charset}
	}
	return cfg.FormatDSN()
}

// OpenDB 打开数据库连接并 ping
func OpenDB(options *DBOptions) (*sql.DB, error) {
	if options == nil {
		return nil, errors.New("options is nil")
	}

	driver := options.Driver
	if driver == "" {
		driver = "mysql"
	}
	db, err := sql.Open(driver, options.FormatDSN())
	if err != nil {
		return nil, errors.Wrapf(err, "open %s failed", driver)
	}
	if options.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(options.ConnMaxLifetime)
	}
	if options.MaxOpenConns > 0 {
		db.SetMaxOpenConns(options.MaxOpenConns)
	}
	if options.MaxIdleConns > 0 {
		db.SetMaxIdleConns(options.MaxIdleConns)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s failed", driver)
	}
	return db, nil
}
