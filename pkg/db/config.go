package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/go-sql-driver/mysql"

	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Configuration sections read by FromTree.
const (
	ConfigSection = "database"
	SchemaSection = "database-schema"
)

// Supported drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Config holds the connection parameters of the "database" section.
// Every field may be overridden by its DATABASE_* environment variable.
type Config struct {
	Driver   string `yaml:"driver" env:"DATABASE_DRIVER"`
	Host     string `yaml:"host" env:"DATABASE_HOST"`
	User     string `yaml:"user" env:"DATABASE_USER"`
	Password string `yaml:"password" env:"DATABASE_PASSWORD"`
	Name     string `yaml:"dbname" env:"DATABASE_NAME"`
	Charset  string `yaml:"charset" env:"DATABASE_CHARSET"`
	SSLMode  string `yaml:"sslmode" env:"DATABASE_SSLMODE"`
	Port     int    `yaml:"port" env:"DATABASE_PORT"`
}

// Schema is the "database-schema" section: DDL statements run in order
// when the database does not exist yet.
type Schema struct {
	Tables []string `yaml:"tables"`
}

// ConfigFromTree decodes the database section of a loaded configuration and
// applies DATABASE_* environment overrides.
func ConfigFromTree(root tree.Tree) (Config, error) {
	var cfg Config
	if err := config.Decode(root, ConfigSection, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	fromEnv, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := mergo.Merge(&cfg, fromEnv, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return cfg.withDefaults(), nil
}

// SchemaFromTree decodes the database-schema section.
func SchemaFromTree(root tree.Tree) (Schema, error) {
	var s Schema
	if err := config.Decode(root, SchemaSection, &s); err != nil {
		return Schema{}, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return s, nil
}

func (c Config) withDefaults() Config {
	if c.Driver == "" {
		c.Driver = DriverMySQL
	}
	if c.Host == "" {
		c.Host = "localhost"
	}
	switch c.Driver {
	case DriverPostgres:
		if c.Port == 0 {
			c.Port = 5432
		}
		if c.SSLMode == "" {
			c.SSLMode = "disable"
		}
	default:
		if c.Port == 0 {
			c.Port = 3306
		}
		if c.Charset == "" {
			c.Charset = "utf8mb4"
		}
	}
	return c
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// mysqlDSN connects to the server without selecting a database; the
// database is selected after schema bootstrap.
func mysqlDSN(c Config, _ string) string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.addr()
	mc.Params = map[string]string{"charset": c.Charset}
	return mc.FormatDSN()
}

// postgresDSN connects to database, or to the maintenance database when
// database is empty.
func postgresDSN(c Config, database string) string {
	if database == "" {
		database = "postgres"
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.addr(),
		Path:     "/" + database,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
