// Package db provides a lazily connected SQL helper for MySQL and PostgreSQL.
//
// The helper wraps [github.com/jmoiron/sqlx]. It opens one connection on first use,
// bootstraps the database from the "database-schema" section when the database does
// not exist, and records every statement in a query log.
//
// # Configuration
//
// Connection parameters come from the "database" configuration section:
//
//	database:
//	  driver: mysql   # or postgres
//	  host: localhost
//	  port: 3306
//	  user: app
//	  password: secret
//	  dbname: app
//
// Every key may be overridden by an environment variable: DATABASE_DRIVER,
// DATABASE_HOST, DATABASE_PORT, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME,
// DATABASE_CHARSET and DATABASE_SSLMODE.
//
// The schema is a list of DDL statements run in order:
//
//	tables:
//	  - CREATE TABLE users (id INT AUTO_INCREMENT PRIMARY KEY, name VARCHAR(64), age INT)
//
// # Usage
//
//	helper, err := db.FromTree(app.Config())
//	if err != nil {
//	    return err
//	}
//
//	ok, err := helper.InsertInto(ctx, "users", map[string]any{"name": "Bo", "age": 30})
//	// INSERT INTO users (age, name) VALUES (:age, :name)
//
//	rows, err := helper.FindBy(ctx, "users", "name", "Bo")
//	for _, row := range rows {
//	    fmt.Println(row.Get("age"))
//	}
//
// Placeholders use the :column form; data keys may be given with or without the
// leading colon.
//
// # Errors
//
//   - [ErrConnect]: the server is unreachable or rejected the credentials
//   - [ErrInit]: the schema bootstrap failed
//   - [ErrQuery]: a helper statement failed
package db
