package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Opener opens a database handle for a driver name and DSN.
type Opener func(driverName, dsn string) (*sqlx.DB, error)

// Option configures a Helper.
type Option func(*Helper)

// WithSchema sets the DDL statements run when the database does not exist.
func WithSchema(s Schema) Option {
	return func(h *Helper) {
		h.schema = s
	}
}

// WithOpener replaces sqlx.Open, e.g. to hand out a sqlmock handle in tests.
func WithOpener(o Opener) Option {
	return func(h *Helper) {
		if o != nil {
			h.open = o
		}
	}
}

// WithLogger logs every statement at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(h *Helper) {
		if l != nil {
			h.logger = l
		}
	}
}

// Helper is a lazily connected database handle with query helpers.
// It keeps a single connection so the database selected after bootstrap
// stays in effect, and records every statement it runs.
type Helper struct {
	cfg    Config
	schema Schema
	open   Opener
	logger *slog.Logger
	db     *sqlx.DB

	queryLog []string
	mu       sync.Mutex
	logMu    sync.Mutex
}

// New returns a Helper for cfg. No connection is made until first use.
func New(cfg Config, opts ...Option) *Helper {
	h := &Helper{
		cfg:    cfg.withDefaults(),
		open:   sqlx.Open,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// FromTree returns a Helper configured from the database and
// database-schema sections of a loaded configuration.
func FromTree(root tree.Tree, opts ...Option) (*Helper, error) {
	cfg, err := ConfigFromTree(root)
	if err != nil {
		return nil, err
	}
	schema, err := SchemaFromTree(root)
	if err != nil {
		return nil, err
	}
	return New(cfg, append([]Option{WithSchema(schema)}, opts...)...), nil
}

// Connect opens the connection, bootstraps the schema when the database
// does not exist, and selects the database. It does nothing when already
// connected. Errors never carry the DSN or the password.
func (h *Helper) Connect(ctx context.Context) error {
	_, err := h.conn(ctx)
	return err
}

// DB returns the connected handle, connecting first if needed.
func (h *Helper) DB(ctx context.Context) (*sqlx.DB, error) {
	return h.conn(ctx)
}

func (h *Helper) conn(ctx context.Context) (*sqlx.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}

	d, err := dialectFor(h.cfg.Driver)
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}

	database := ""
	if d.use == nil && len(h.schema.Tables) == 0 {
		database = h.cfg.Name
	}
	conn, err := h.dial(ctx, d, database)
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}

	if len(h.schema.Tables) > 0 {
		if conn, database, err = h.initDatabase(ctx, conn, d); err != nil {
			if conn != nil {
				_ = conn.Close()
			}
			return nil, errors.Join(ErrInit, err)
		}
	}

	if conn, err = h.selectDB(ctx, conn, d, database); err != nil {
		return nil, errors.Join(ErrConnect, err)
	}

	h.db = conn
	return conn, nil
}

func (h *Helper) dial(ctx context.Context, d dialect, database string) (*sqlx.DB, error) {
	conn, err := h.open(d.driverName, d.dsn(h.cfg, database))
	if err != nil {
		return nil, err
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// initDatabase creates the database and runs the schema statements when
// the catalog does not list it. It returns the connection to use next and
// the database that connection is bound to.
func (h *Helper) initDatabase(ctx context.Context, conn *sqlx.DB, d dialect) (*sqlx.DB, string, error) {
	name := h.cfg.Name
	found, err := h.query(ctx, conn, d.catalog, map[string]any{"dbname": name})
	if err != nil {
		return conn, "", err
	}
	if len(found) > 0 {
		return conn, "", nil
	}

	if _, err := h.exec(ctx, conn, d.create(name), nil); err != nil {
		return conn, "", err
	}
	if conn, err = h.selectDB(ctx, conn, d, ""); err != nil {
		return nil, "", err
	}
	for _, table := range h.schema.Tables {
		if _, err := h.exec(ctx, conn, table, nil); err != nil {
			return conn, name, err
		}
	}
	return conn, name, nil
}

// selectDB makes the configured database current. current is the database
// the connection is already bound to, if any.
func (h *Helper) selectDB(ctx context.Context, conn *sqlx.DB, d dialect, current string) (*sqlx.DB, error) {
	name := h.cfg.Name
	if d.use != nil {
		if name == "" {
			return conn, nil
		}
		if _, err := h.exec(ctx, conn, d.use(name), nil); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}

	if current == name {
		return conn, nil
	}
	_ = conn.Close()
	return h.dial(ctx, d, name)
}

// QueryLog returns every statement executed so far, in order.
func (h *Helper) QueryLog() []string {
	h.logMu.Lock()
	defer h.logMu.Unlock()
	return slices.Clone(h.queryLog)
}

func (h *Helper) record(ctx context.Context, query string) {
	h.logMu.Lock()
	h.queryLog = append(h.queryLog, query)
	h.logMu.Unlock()
	h.logger.DebugContext(ctx, "db query", slog.String("query", query))
}

// InsertInto inserts data into table. Columns are sorted so the column list
// and the :column placeholders line up:
//
//	INSERT INTO users (age, name) VALUES (:age, :name)
func (h *Helper) InsertInto(ctx context.Context, table string, data map[string]any) (bool, error) {
	conn, err := h.conn(ctx)
	if err != nil {
		return false, err
	}

	columns, args := namedArgs(data)
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		placeholders[i] = ":" + column
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if _, err := h.exec(ctx, conn, query, args); err != nil {
		return false, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return true, nil
}

// Update sets data on the rows of table matching where. The "WHERE "
// keyword is added when missing. Named parameters of where are bound from
// whereArgs; data takes precedence on a name clash.
func (h *Helper) Update(ctx context.Context, table string, data map[string]any, where string, whereArgs map[string]any) (bool, error) {
	where = strings.TrimSpace(where)
	if where == "" {
		return false, fmt.Errorf("%w: update of %s without condition", ErrQuery, table)
	}
	if !strings.HasPrefix(strings.ToUpper(where), "WHERE ") {
		where = "WHERE " + where
	}

	conn, err := h.conn(ctx)
	if err != nil {
		return false, err
	}

	columns, args := namedArgs(data)
	sets := make([]string, len(columns))
	for i, column := range columns {
		sets[i] = column + " = :" + column
	}
	_, extra := namedArgs(whereArgs)
	for k, v := range extra {
		if _, ok := args[k]; !ok {
			args[k] = v
		}
	}
	query := fmt.Sprintf("UPDATE %s SET %s %s", table, strings.Join(sets, ", "), where)

	if _, err := h.exec(ctx, conn, query, args); err != nil {
		return false, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return true, nil
}

// FindBy returns the rows of table whose column equals value.
func (h *Helper) FindBy(ctx context.Context, table, column string, value any) ([]Record, error) {
	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = :searchTerm", table, column)
	return h.Fetch(ctx, query, map[string]any{"searchTerm": value})
}

// Fetch runs query with :name parameters bound from data and returns every
// row.
func (h *Helper) Fetch(ctx context.Context, query string, data map[string]any) ([]Record, error) {
	conn, err := h.conn(ctx)
	if err != nil {
		return nil, err
	}
	_, args := namedArgs(data)
	records, err := h.query(ctx, conn, query, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQuery, err)
	}
	return records, nil
}

// Close closes the connection. A later call reconnects.
func (h *Helper) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db = nil
	return err
}

func (h *Helper) exec(ctx context.Context, conn *sqlx.DB, query string, args map[string]any) (sql.Result, error) {
	h.record(ctx, query)
	if args == nil {
		return conn.ExecContext(ctx, query)
	}
	return conn.NamedExecContext(ctx, query, args)
}

func (h *Helper) query(ctx context.Context, conn *sqlx.DB, query string, args map[string]any) ([]Record, error) {
	h.record(ctx, query)

	var (
		rows *sqlx.Rows
		err  error
	)
	if len(args) == 0 {
		rows, err = conn.QueryxContext(ctx, query)
	} else {
		rows, err = conn.NamedQueryContext(ctx, query, args)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

// namedArgs strips the optional ":" prefix from the keys of data and
// returns the sorted column names with the bind map.
func namedArgs(data map[string]any) ([]string, map[string]any) {
	args := make(map[string]any, len(data))
	for k, v := range data {
		args[strings.TrimPrefix(k, ":")] = v
	}
	return slices.Sorted(maps.Keys(args)), args
}
