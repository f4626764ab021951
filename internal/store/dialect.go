package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Database drivers, registered under "sqlite", "postgres" and "mysql".
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported values for Options.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// sqlDialect captures what differs between the supported databases.
type sqlDialect interface {
	// Name is the ent dialect name used to build queries.
	Name() string
	// DriverName is the database/sql driver name.
	DriverName() string
	// KeyType and PayloadType are the column types of kv_entries.
	KeyType() string
	PayloadType() string
	// Configure applies connection settings after open.
	Configure(db *sql.DB) error
}

func dialectFor(driver string) (sqlDialect, error) {
	switch strings.ToLower(driver) {
	case "", DriverSQLite, "sqlite3":
		return sqliteDialect{}, nil
	case DriverPostgres, "postgresql":
		return postgresDialect{}, nil
	case DriverMySQL:
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", driver)
	}
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string        { return dialect.SQLite }
func (sqliteDialect) DriverName() string  { return DriverSQLite }
func (sqliteDialect) KeyType() string     { return "TEXT" }
func (sqliteDialect) PayloadType() string { return "TEXT" }

// Configure sets pragmas for single-user use. SQLite allows one writer, so
// the pool is capped at a single connection.
func (sqliteDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

type postgresDialect struct{}

func (postgresDialect) Name() string        { return dialect.Postgres }
func (postgresDialect) DriverName() string  { return DriverPostgres }
func (postgresDialect) KeyType() string     { return "TEXT" }
func (postgresDialect) PayloadType() string { return "TEXT" }

func (postgresDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

type mysqlDialect struct{}

func (mysqlDialect) Name() string       { return dialect.MySQL }
func (mysqlDialect) DriverName() string { return DriverMySQL }

// KeyType is bounded so the primary key fits InnoDB's index limit with utf8mb4.
func (mysqlDialect) KeyType() string     { return "VARCHAR(191)" }
func (mysqlDialect) PayloadType() string { return "LONGTEXT" }

func (mysqlDialect) Configure(db *sql.DB) error {
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

// createTableQuery builds the DDL for the key-value table.
func createTableQuery(d sqlDialect) string {
	column := func(b *entsql.Builder, name, typ string) {
		b.Ident(name).WriteString(" " + typ + " NOT NULL")
	}
	return entsql.Dialect(d.Name()).String(func(b *entsql.Builder) {
		b.WriteString("CREATE TABLE IF NOT EXISTS ").Ident(tableEntries).Pad()
		b.Wrap(func(b *entsql.Builder) {
			column(b, columnKey, d.KeyType())
			b.Comma()
			column(b, columnPayload, d.PayloadType())
			b.Comma()
			column(b, columnUpdatedAt, "BIGINT")
			b.Comma().WriteString("PRIMARY KEY ").Wrap(func(b *entsql.Builder) {
				b.Ident(columnKey)
			})
		})
	})
}
