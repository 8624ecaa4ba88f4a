package db

import (
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// dialect holds the statements that differ between servers.
type dialect struct {
	// driverName is the database/sql driver the handle is opened with.
	driverName string
	dsn        func(c Config, database string) string
	// catalog returns a row when the database exists. It binds :dbname.
	catalog string
	create  func(name string) string
	// use selects a database on the open connection. Dialects without it
	// reconnect with the database in the DSN.
	use func(name string) string
}

var dialects = map[string]dialect{
	DriverMySQL: {
		driverName: "mysql",
		dsn:        mysqlDSN,
		catalog:    "SHOW DATABASES LIKE :dbname",
		create: func(name string) string {
			return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", quoteMySQL(name))
		},
		use: func(name string) string {
			return fmt.Sprintf("USE %s", quoteMySQL(name))
		},
	},
	DriverPostgres: {
		driverName: "pgx",
		dsn:        postgresDSN,
		catalog:    "SELECT datname FROM pg_database WHERE datname = :dbname",
		create: func(name string) string {
			return fmt.Sprintf("CREATE DATABASE %s", quotePostgres(name))
		},
	},
}

func dialectFor(driver string) (dialect, error) {
	d, ok := dialects[driver]
	if !ok {
		return dialect{}, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	return d, nil
}

func quoteMySQL(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func quotePostgres(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
