package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pebble/pkg/db"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

func TestConfigFromTree(t *testing.T) {
	root := tree.Tree{
		"database": tree.Tree{
			"host":     "db.local",
			"user":     "app",
			"password": "secret",
			"dbname":   "shop",
		},
		"database-schema": tree.Tree{
			"tables": []any{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"},
		},
	}

	t.Run("file values with defaults", func(t *testing.T) {
		cfg, err := db.ConfigFromTree(root)
		require.NoError(t, err)
		require.Equal(t, db.Config{
			Driver:   db.DriverMySQL,
			Host:     "db.local",
			User:     "app",
			Password: "secret",
			Name:     "shop",
			Charset:  "utf8mb4",
			Port:     3306,
		}, cfg)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATABASE_HOST", "db.internal")
		t.Setenv("DATABASE_DRIVER", "postgres")

		cfg, err := db.ConfigFromTree(root)
		require.NoError(t, err)
		require.Equal(t, "db.internal", cfg.Host)
		require.Equal(t, db.DriverPostgres, cfg.Driver)
		require.Equal(t, 5432, cfg.Port)
		require.Equal(t, "shop", cfg.Name)
	})

	t.Run("schema", func(t *testing.T) {
		schema, err := db.SchemaFromTree(root)
		require.NoError(t, err)
		require.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"}, schema.Tables)
	})

	t.Run("missing sections", func(t *testing.T) {
		cfg, err := db.ConfigFromTree(tree.Tree{})
		require.NoError(t, err)
		require.Equal(t, "localhost", cfg.Host)

		schema, err := db.SchemaFromTree(tree.Tree{})
		require.NoError(t, err)
		require.Empty(t, schema.Tables)
	})
}
