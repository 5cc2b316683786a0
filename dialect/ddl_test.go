package dialect

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hatlonely/dbx/dberr"
	"github.com/hatlonely/dbx/schema"
	"github.com/hatlonely/dbx/script"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type shop struct {
	db       *schema.Database
	users    *schema.Table
	orders   *schema.Table
	relation *schema.Relation
	view     *schema.View
}

// newShop Users(id AUTOINC PK, name TEXT(50) NOT NULL)，Orders.userId 引用 Users.id
func newShop(d *Driver, schemaName string) *shop {
	db := schema.NewDatabase(schemaName)

	users, _ := db.AddTable("Users")
	id, _ := users.AddColumn("id", schema.TypeAutoInc, 0, schema.AutoGenerated, nil)
	name, _ := users.AddColumn("name", schema.TypeText, 50, schema.NotNull, nil)
	_ = users.SetPrimaryKey(id)
	_, _ = users.AddIndex("IDX_USERS_NAME", schema.IndexUnique, name)

	orders, _ := db.AddTable("Orders")
	oid, _ := orders.AddColumn("id", schema.TypeAutoInc, 0, schema.AutoGenerated, nil)
	userID, _ := orders.AddColumn("userId", schema.TypeInteger, 4, schema.NotNull, nil)
	_, _ = orders.AddColumn("total", schema.TypeDecimal, 10.2, schema.Nullable, nil)
	_ = orders.SetPrimaryKey(oid)
	_, _ = orders.AddIndex("IDX_ORDERS_USER", schema.IndexStandard, userID)

	relation, _ := db.AddRelation("FK_ORDERS_USERS", userID.ReferenceOn(id))

	view, _ := db.AddView("UserOrders", func() schema.Command {
		return schema.NewSelect("u.name", "count(*)").
			From("Users u", "Orders o").
			Where("o.userId = u.id").
			GroupBy("u.name").
			OrderBy("u.name")
	})
	view.AddColumn("name", schema.TypeText).AddColumn("orders", schema.TypeInteger)

	if d != nil {
		_ = db.Attach(d)
	}
	return &shop{db: db, users: users, orders: orders, relation: relation, view: view}
}

func mustBuild(b *Builder) *Driver {
	d, err := b.Build()
	if err != nil {
		panic(err)
	}
	return d
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return -1
	}
	return m.GetCounter().GetValue()
}

func TestDDLScriptTable(t *testing.T) {
	Convey("CREATE TABLE", t, func() {
		d := mustBuild(NewBuilder("h2"))
		s := newShop(d, "")
		out := script.New()

		So(d.DDLScript(CmdCreate, s.users, out), ShouldBeNil)
		So(out.Len(), ShouldEqual, 2)
		So(out.Statement(0), ShouldEqual, "-- creating table Users --\n"+
			"CREATE TABLE Users (\n"+
			"   id INT AUTO_INCREMENT NOT NULL,\n"+
			"   name VARCHAR(50) NOT NULL, PRIMARY KEY (id))")
		So(out.Statement(0), ShouldContainSubstring, "CREATE TABLE Users (")
		So(out.Statement(1), ShouldEqual, "CREATE UNIQUE INDEX IDX_USERS_NAME ON Users (name)")

		Convey("DECIMAL 和普通索引", func() {
			out := script.New()
			So(d.DDLScript(CmdCreate, s.orders, out), ShouldBeNil)
			So(out.Statement(0), ShouldContainSubstring, "total DECIMAL(10,2)")
			So(out.Statement(0), ShouldContainSubstring, "userId INT NOT NULL,")
			So(out.Statement(1), ShouldEqual, "CREATE INDEX IDX_ORDERS_USER ON Orders (userId)")
		})

		Convey("UNKNOWN 列被跳过，不留下多余的逗号", func() {
			db := schema.NewDatabase("")
			tbl, _ := db.AddTable("Things")
			_, _ = tbl.AddColumn("a", schema.TypeInteger, 4, schema.NotNull, nil)
			_, _ = tbl.AddColumn("mystery", schema.TypeUnknown, 0, schema.Nullable, nil)
			_, _ = tbl.AddColumn("b", schema.TypeText, 10, schema.Nullable, nil)
			_, _ = tbl.AddColumn("last", schema.TypeUnknown, 0, schema.Nullable, nil)
			So(db.Attach(d), ShouldBeNil)

			out := script.New()
			So(d.DDLScript(CmdCreate, tbl, out), ShouldBeNil)
			So(out.Statement(0), ShouldEqual, "-- creating table Things --\nCREATE TABLE Things (\n   a INT NOT NULL,\n   b VARCHAR(10))")
		})

		Convey("主键忽略未创建的列", func() {
			db := schema.NewDatabase("")
			tbl, _ := db.AddTable("Things")
			a, _ := tbl.AddColumn("a", schema.TypeInteger, 4, schema.NotNull, nil)
			mystery, _ := tbl.AddColumn("mystery", schema.TypeUnknown, 0, schema.NotNull, nil)
			So(tbl.SetPrimaryKey(a, mystery), ShouldBeNil)
			So(db.Attach(d), ShouldBeNil)

			out := script.New()
			So(d.DDLScript(CmdCreate, tbl, out), ShouldBeNil)
			So(out.Statement(0), ShouldEqual, "-- creating table Things --\nCREATE TABLE Things (\n   a INT NOT NULL, PRIMARY KEY (a))")
		})

		Convey("所有列都是 UNKNOWN 时不输出分隔符和主键", func() {
			db := schema.NewDatabase("")
			tbl, _ := db.AddTable("Ghost")
			mystery, _ := tbl.AddColumn("mystery", schema.TypeUnknown, 0, schema.NotNull, nil)
			So(tbl.SetPrimaryKey(mystery), ShouldBeNil)
			So(db.Attach(d), ShouldBeNil)

			out := script.New()
			So(d.DDLScript(CmdCreate, tbl, out), ShouldBeNil)
			So(out.Statement(0), ShouldEqual, "-- creating table Ghost --\nCREATE TABLE Ghost ()")
			So(out.Statement(0), ShouldNotContainSubstring, "PRIMARY KEY")
		})

		Convey("表注释转义单引号", func() {
			s.users.SetComment("user's table")
			out := script.New()
			So(d.DDLScript(CmdCreate, s.users, out), ShouldBeNil)
			So(out.Statement(0), ShouldEndWith, "PRIMARY KEY (id)) COMMENT = 'user''s table'")
		})

		Convey("schema 前缀和保留字加引号", func() {
			d := mustBuild(NewBuilder("mysql"))
			db := schema.NewDatabase("shop")
			tbl, _ := db.AddTable("order")
			key, _ := tbl.AddColumn("key", schema.TypeText, 20, schema.NotNull, nil)
			_ = tbl.SetPrimaryKey(key)
			So(db.Attach(d), ShouldBeNil)

			out := script.New()
			So(d.DDLScript(CmdCreate, tbl, out), ShouldBeNil)
			So(out.Statement(0), ShouldEqual, "-- creating table order --\nCREATE TABLE shop.`order` (\n   `key` VARCHAR(20) NOT NULL, PRIMARY KEY (`key`))")
		})

		Convey("DROP TABLE", func() {
			out := script.New()
			So(d.DDLScript(CmdDrop, s.users, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"DROP TABLE Users"})
		})

		Convey("ALTER TABLE 未实现", func() {
			out := script.New("existing")
			err := d.DDLScript(CmdAlter, s.users, out)
			So(errors.Is(err, dberr.ErrNotImplemented), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "ddl.TABLE.ALTER")
			So(out.Statements(), ShouldResemble, []string{"existing"})
		})
	})
}

func TestDDLScriptRelation(t *testing.T) {
	Convey("外键", t, func() {
		Convey("CREATE 只生成一条 ALTER TABLE 语句", func() {
			d := mustBuild(NewBuilder("h2"))
			s := newShop(d, "")
			out := script.New()

			So(d.DDLScript(CmdCreate, s.relation, out), ShouldBeNil)
			So(out.Len(), ShouldEqual, 1)
			So(out.Statement(0), ShouldEqual, "-- creating foreign key constraint FK_ORDERS_USERS --\n"+
				"ALTER TABLE Orders ADD CONSTRAINT FK_ORDERS_USERS FOREIGN KEY (userId) REFERENCES Users (id)")
		})

		Convey("DROP 不会再生成 CREATE", func() {
			d := mustBuild(NewBuilder("h2"))
			s := newShop(d, "")
			out := script.New()

			So(d.DDLScript(CmdDrop, s.relation, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"ALTER TABLE Orders DROP CONSTRAINT FK_ORDERS_USERS"})
		})

		Convey("mysql 使用 DROP FOREIGN KEY", func() {
			d := mustBuild(NewBuilder("mysql"))
			s := newShop(d, "")
			out := script.New()

			So(d.DDLScript(CmdDrop, s.relation, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"ALTER TABLE Orders DROP FOREIGN KEY FK_ORDERS_USERS"})
		})

		Convey("ALTER 未实现", func() {
			d := mustBuild(NewBuilder("h2"))
			s := newShop(d, "")
			out := script.New()

			err := d.DDLScript(CmdAlter, s.relation, out)
			So(errors.Is(err, dberr.ErrNotImplemented), ShouldBeTrue)
			So(out.Len(), ShouldEqual, 0)
		})
	})
}

func TestDDLScriptView(t *testing.T) {
	Convey("视图", t, func() {
		d := mustBuild(NewBuilder("h2"))
		s := newShop(d, "")

		Convey("CREATE 去掉 ORDER BY", func() {
			out := script.New()
			So(d.DDLScript(CmdCreate, s.view, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"CREATE VIEW UserOrders (name, orders)\nAS\n" +
				"SELECT u.name, count(*) FROM Users u, Orders o WHERE o.userId = u.id GROUP BY u.name"})
			So(s.view.CreateCommand().SQL(), ShouldEndWith, "ORDER BY u.name")
		})

		Convey("DROP", func() {
			out := script.New()
			So(d.DDLScript(CmdDrop, s.view, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"DROP VIEW UserOrders"})
		})

		Convey("ALTER 未实现，脚本不变", func() {
			out := script.New("CREATE TABLE x (a INT)")
			err := d.DDLScript(CmdAlter, s.view, out)
			So(errors.Is(err, dberr.ErrNotImplemented), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "ddl.VIEW.ALTER")
			So(out.Statements(), ShouldResemble, []string{"CREATE TABLE x (a INT)"})
		})

		Convey("没有定义查询", func() {
			v, err := s.db.AddView("Empty", nil)
			So(err, ShouldBeNil)
			out := script.New()
			err = d.DDLScript(CmdCreate, v, out)
			So(errors.Is(err, dberr.ErrNotImplemented), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "Empty.createCommand")
			So(out.Len(), ShouldEqual, 0)
		})
	})
}

func TestDDLScriptColumn(t *testing.T) {
	Convey("列", t, func() {
		h2 := mustBuild(NewBuilder("h2"))
		mysql := mustBuild(NewBuilder("mysql"))
		h2Shop := newShop(h2, "")
		mysqlShop := newShop(mysql, "")

		Convey("ADD", func() {
			c, err := h2Shop.users.AddColumn("email", schema.TypeText, 80, schema.Nullable, nil)
			So(err, ShouldBeNil)
			out := script.New()
			So(h2.DDLScript(CmdCreate, c, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"ALTER TABLE Users ADD email VARCHAR(80)"})
		})

		Convey("ALTER 和 MODIFY", func() {
			out := script.New()
			So(h2.DDLScript(CmdAlter, h2Shop.users.Column("name"), out), ShouldBeNil)
			So(mysql.DDLScript(CmdAlter, mysqlShop.users.Column("name"), out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{
				"ALTER TABLE Users ALTER name VARCHAR(50) NOT NULL",
				"ALTER TABLE Users MODIFY name VARCHAR(50) NOT NULL",
			})
		})

		Convey("DROP COLUMN", func() {
			out := script.New()
			So(h2.DDLScript(CmdDrop, h2Shop.orders.Column("total"), out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"ALTER TABLE Orders DROP COLUMN total"})
		})

		Convey("UNKNOWN 类型不生成语句", func() {
			c, err := h2Shop.users.AddColumn("mystery", schema.TypeUnknown, 0, schema.Nullable, nil)
			So(err, ShouldBeNil)
			out := script.New()
			So(h2.DDLScript(CmdCreate, c, out), ShouldBeNil)
			So(out.Len(), ShouldEqual, 0)
		})
	})
}

func TestDDLScriptDatabase(t *testing.T) {
	Convey("数据库", t, func() {
		Convey("CREATE 依次生成表、外键和视图", func() {
			d := mustBuild(NewBuilder("h2"))
			s := newShop(d, "")
			out := script.New()

			So(d.DDLScript(CmdCreate, s.db, out), ShouldBeNil)
			So(out.Len(), ShouldEqual, 6)
			So(out.Statement(0), ShouldStartWith, "-- creating table Users --")
			So(out.Statement(1), ShouldStartWith, "CREATE UNIQUE INDEX IDX_USERS_NAME")
			So(out.Statement(2), ShouldStartWith, "-- creating table Orders --")
			So(out.Statement(3), ShouldStartWith, "CREATE INDEX IDX_ORDERS_USER")
			So(out.Statement(4), ShouldStartWith, "-- creating foreign key constraint FK_ORDERS_USERS --")
			So(out.Statement(5), ShouldStartWith, "CREATE VIEW UserOrders")
		})

		Convey("databaseName 和序列表", func() {
			d := mustBuild(NewBuilder("h2").DatabaseName("shop").UseSequenceTable(true))
			s := newShop(d, "")
			out := script.New()

			So(d.DDLScript(CmdCreate, s.db, out), ShouldBeNil)
			So(out.Statement(0), ShouldEqual, "CREATE SCHEMA IF NOT EXISTS shop")
			So(out.Statement(1), ShouldEqual, "SET SCHEMA shop")
			So(out.Statement(2), ShouldEqual, "-- creating table Sequences --\n"+
				"CREATE TABLE Sequences (\n"+
				"   SeqName VARCHAR(40) NOT NULL,\n"+
				"   SeqValue BIGINT NOT NULL,\n"+
				"   udpTimestamp DATETIME NOT NULL, PRIMARY KEY (SeqName))")
			So(out.Statement(3), ShouldContainSubstring, "id INT NOT NULL,")
			So(s.db.TableByName("Sequences"), ShouldBeNil)
		})

		Convey("mysql 创建数据库", func() {
			d := mustBuild(NewBuilder("mysql").DatabaseName("shop"))
			s := newShop(d, "")
			out := script.New()

			So(d.DDLScript(CmdCreate, s.db, out), ShouldBeNil)
			So(out.Statement(0), ShouldEqual, "CREATE DATABASE IF NOT EXISTS shop")
			So(out.Statement(1), ShouldEqual, "USE shop")
		})

		Convey("模型中已有序列表时不重复创建", func() {
			d := mustBuild(NewBuilder("h2").UseSequenceTable(true).SequenceTableName("Seq"))
			s := newShop(nil, "")
			seq, _ := s.db.AddTable("Seq")
			_, _ = seq.AddColumn("SeqName", schema.TypeText, 40, schema.NotNull, nil)
			So(s.db.Attach(d), ShouldBeNil)

			out := script.New()
			So(d.DDLScript(CmdCreate, s.db, out), ShouldBeNil)
			count := 0
			for _, stmt := range out.Statements() {
				if stmt == "-- creating table Seq --\nCREATE TABLE Seq (\n   SeqName VARCHAR(40) NOT NULL)" {
					count++
				}
			}
			So(count, ShouldEqual, 1)
		})

		Convey("DROP", func() {
			h2 := mustBuild(NewBuilder("h2"))
			mysql := mustBuild(NewBuilder("mysql"))
			out := script.New()

			So(h2.DDLScript(CmdDrop, newShop(h2, "shop").db, out), ShouldBeNil)
			So(mysql.DDLScript(CmdDrop, newShop(mysql, "shop").db, out), ShouldBeNil)
			So(out.Statements(), ShouldResemble, []string{"DROP SCHEMA shop", "DROP DATABASE shop"})
		})

		Convey("DROP 没有名字时返回 InvalidArgument", func() {
			d := mustBuild(NewBuilder("h2"))
			out := script.New("existing")
			err := d.DDLScript(CmdDrop, newShop(d, "").db, out)
			So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)
			So(out.Statements(), ShouldResemble, []string{"existing"})

			d = mustBuild(NewBuilder("h2").DatabaseName("fallback"))
			So(d.DDLScript(CmdDrop, newShop(d, "").db, out), ShouldBeNil)
			So(out.Statement(1), ShouldEqual, "DROP SCHEMA fallback")
		})

		Convey("视图没有查询时整个数据库脚本失败，脚本不变", func() {
			d := mustBuild(NewBuilder("h2"))
			s := newShop(d, "")
			_, _ = s.db.AddView("Broken", nil)
			out := script.New()
			err := d.DDLScript(CmdCreate, s.db, out)
			So(errors.Is(err, dberr.ErrNotImplemented), ShouldBeTrue)
			So(out.Len(), ShouldEqual, 0)
		})
	})
}

func TestDDLScriptPrecondition(t *testing.T) {
	Convey("对象必须属于挂在当前驱动上的数据库", t, func() {
		d := mustBuild(NewBuilder("h2"))
		other := mustBuild(NewBuilder("h2"))
		out := script.New()

		err := d.DDLScript(CmdCreate, newShop(other, "").users, out)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)

		err = d.DDLScript(CmdCreate, newShop(nil, "").users, out)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)

		c, _ := schema.NewColumn("free", schema.TypeText, 10, schema.Nullable, nil)
		err = d.DDLScript(CmdCreate, c, out)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)

		err = d.DDLScript(CmdCreate, nil, out)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)

		var nilTable *schema.Table
		err = d.DDLScript(CmdCreate, nilTable, out)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)

		err = d.DDLScript(CmdCreate, newShop(d, "").users, nil)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)

		So(out.Len(), ShouldEqual, 0)
	})
}

func TestDropObject(t *testing.T) {
	Convey("DropObject", t, func() {
		d := mustBuild(NewBuilder("h2"))
		out := script.New("existing")

		err := d.DropObject("TABLE", "", out)
		So(errors.Is(err, dberr.ErrInvalidArgument), ShouldBeTrue)
		So(out.Statements(), ShouldResemble, []string{"existing"})

		So(d.DropObject("SEQUENCE", "seq_users", out), ShouldBeNil)
		So(d.DropObject("TABLE", "user", out), ShouldBeNil)
		So(out.Statements(), ShouldResemble, []string{"existing", "DROP SEQUENCE seq_users", `DROP TABLE "user"`})
	})
}

func TestDDLMetrics(t *testing.T) {
	Convey("生成的语句计入 dbx_ddl_statements_total", t, func() {
		d := mustBuild(NewBuilder("mysql"))
		s := newShop(d, "")

		created := ddlStatements.WithLabelValues("mysql", "CREATE", "TABLE")
		altered := ddlStatements.WithLabelValues("mysql", "ALTER", "VIEW")
		before, beforeAltered := counterValue(created), counterValue(altered)

		So(d.DDLScript(CmdCreate, s.users, script.New()), ShouldBeNil)
		So(counterValue(created), ShouldEqual, before+2)

		So(d.DDLScript(CmdAlter, s.view, script.New()), ShouldNotBeNil)
		So(counterValue(altered), ShouldEqual, beforeAltered)
	})
}

func TestSequenceTableWithReservedName(t *testing.T) {
	Convey("序列表名是保留字时建表语句和生成器都加引号", t, func() {
		d := mustBuild(NewBuilder("h2").UseSequenceTable(true).SequenceTableName("order"))

		out := script.New()
		seq, err := d.SequenceTable("")
		So(err, ShouldBeNil)
		So(seq.Database().Attach(d), ShouldBeNil)
		So(d.DDLScript(CmdCreate, seq, out), ShouldBeNil)
		So(out.Statement(0), ShouldContainSubstring, `CREATE TABLE "order" (`)

		db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "order.db"))
		So(err, ShouldBeNil)
		defer db.Close()
		db.SetMaxOpenConns(1)

		ctx := context.Background()
		_, err = out.Run(ctx, db)
		So(err, ShouldBeNil)

		gen := d.SequenceGenerator(db)
		So(gen.Table(), ShouldEqual, "order")
		v, err := d.NextSequenceValue(ctx, gen, "Users.id", 1)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, int64(1))
		v, err = d.NextSequenceValue(ctx, gen, "Users.id", 1)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, int64(2))
	})
}

func TestGeneratedScriptOnSqlite(t *testing.T) {
	Convey("生成的建表语句可以在 sqlite 上执行，序列表可以直接给 TableGenerator 使用", t, func() {
		d := mustBuild(NewBuilder("h2").UseSequenceTable(true))
		s := newShop(d, "")

		out := script.New()
		seq, err := d.SequenceTable("")
		So(err, ShouldBeNil)
		So(seq.Database().Attach(d), ShouldBeNil)
		So(d.DDLScript(CmdCreate, seq, out), ShouldBeNil)
		So(d.DDLScript(CmdCreate, s.users, out), ShouldBeNil)
		So(d.DDLScript(CmdCreate, s.orders, out), ShouldBeNil)

		db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "shop.db"))
		So(err, ShouldBeNil)
		defer db.Close()
		db.SetMaxOpenConns(1)

		ctx := context.Background()
		n, err := out.Run(ctx, db)
		So(err, ShouldBeNil)
		So(n, ShouldEqual, out.Len())

		gdb, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		So(err, ShouldBeNil)
		migrator := gdb.Migrator()
		So(migrator.HasTable("Sequences"), ShouldBeTrue)
		So(migrator.HasTable("Orders"), ShouldBeTrue)
		So(migrator.HasColumn("Users", "name"), ShouldBeTrue)
		So(migrator.HasIndex("Users", "IDX_USERS_NAME"), ShouldBeTrue)
		So(migrator.HasIndex("Orders", "IDX_ORDERS_USER"), ShouldBeTrue)
		columns, err := migrator.ColumnTypes("Orders")
		So(err, ShouldBeNil)
		So(len(columns), ShouldEqual, 3)
		So(columns[2].Name(), ShouldEqual, "total")

		gen := d.SequenceGenerator(db)
		id := s.users.Column("id")
		v, err := d.ColumnAutoValue(ctx, id, gen)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, int64(1))
		v, err = d.ColumnAutoValue(ctx, id, gen)
		So(err, ShouldBeNil)
		So(v, ShouldEqual, int64(2))

		_, err = db.ExecContext(ctx, "INSERT INTO Users (id, name) VALUES (?, ?)", v, "alice")
		So(err, ShouldBeNil)
		_, err = db.ExecContext(ctx, "INSERT INTO Users (id, name) VALUES (?, ?)", 3, "alice")
		So(err, ShouldNotBeNil)
	})
}
