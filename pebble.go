package pebble

import (
	"context"
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/pebble/internal"
	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/db"
	"github.com/dmitrymomot/pebble/pkg/health"
	"github.com/dmitrymomot/pebble/pkg/logger"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Type aliases - public API
type (
	// App is the application context shared by every request.
	App = internal.App

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// HandlerFunc is the signature of controller actions.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// Controller groups the actions routes refer to as "Controller.method".
	Controller = internal.Controller

	// ControllerFactory creates a controller on first use.
	ControllerFactory = internal.ControllerFactory

	// Dispatcher resolves action names to controller actions.
	Dispatcher = internal.Dispatcher

	// AppInitializer, BeforeActionHook and BeforeViewHook are optional
	// interfaces of the app controller.
	AppInitializer   = internal.AppInitializer
	BeforeActionHook = internal.BeforeActionHook
	BeforeViewHook   = internal.BeforeViewHook

	// Route is one entry of the routes configuration section.
	Route = internal.Route

	// Method is the HTTP method of a route.
	Method = internal.Method

	// ViewRenderer renders named views.
	ViewRenderer = internal.ViewRenderer

	// Component is the interface for renderable templates.
	// This is compatible with templ.Component.
	Component = internal.Component

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ResponseWriter wraps http.ResponseWriter with status tracking and hooks.
	ResponseWriter = internal.ResponseWriter

	// HTTPError carries a status code and a user-facing message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// PanicError is a panic recovered while handling a request.
	PanicError = internal.PanicError

	// Tree is a nested configuration mapping.
	Tree = tree.Tree

	// ContextExtractor extracts a slog attribute from context.
	// Used with WithLogger to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor

	// Scalar lists the types Param, Query and QueryDefault parse into.
	Scalar = internal.Scalar
)

// Route methods and reserved route names.
const (
	MethodGet  = internal.MethodGet
	MethodPost = internal.MethodPost

	RouteNotFound = internal.RouteNotFound
	RouteFatal    = internal.RouteFatal
)

// Routing and dispatch errors.
var (
	ErrRouteConfig        = internal.ErrRouteConfig
	ErrRouteNotFound      = internal.ErrRouteNotFound
	ErrRouteParam         = internal.ErrRouteParam
	ErrDispatch           = internal.ErrDispatch
	ErrInvalidAction      = internal.ErrInvalidAction
	ErrControllerNotFound = internal.ErrControllerNotFound
	ErrActionNotFound     = internal.ErrActionNotFound
	ErrNoRenderer         = internal.ErrNoRenderer
	ErrViewRender         = internal.ErrViewRender
)

// New builds the application: it loads the configuration, validates the
// routes and binds them to the router.
//
// Example:
//
//	app, err := pebble.New(
//	    pebble.WithConfigDir("configs"),
//	    pebble.WithController("Pages", controllers.NewPages),
//	    pebble.WithRenderer(view.New(os.DirFS("views"))),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = app.Run(pebble.Address(":8080"))
func New(opts ...Option) (*App, error) {
	return internal.New(opts...)
}

// App options

// WithConfig uses an already loaded configuration tree.
func WithConfig(cfg Tree) Option {
	return internal.WithConfig(cfg)
}

// WithConfigFS loads the configuration from fsys.
func WithConfigFS(fsys fs.FS, opts ...config.Option) Option {
	return internal.WithConfigFS(fsys, opts...)
}

// WithConfigDir loads the configuration from a directory on disk.
func WithConfigDir(dir string, opts ...config.Option) Option {
	return internal.WithConfigDir(dir, opts...)
}

// WithDebug overrides app.debug. In debug mode handler errors and panics
// are written to the response instead of reaching the fatal route.
func WithDebug(debug bool) Option {
	return internal.WithDebug(debug)
}

// WithLogger sets the application logger.
// Extractors pull values from context (e.g., request_id).
func WithLogger(l *slog.Logger, extractors ...ContextExtractor) Option {
	return internal.WithLogger(l, extractors...)
}

// WithController registers a controller factory under name.
func WithController(name string, factory ControllerFactory) Option {
	return internal.WithController(name, factory)
}

// WithControllers registers several controller factories at once.
func WithControllers(factories map[string]ControllerFactory) Option {
	return internal.WithControllers(factories)
}

// WithAppController registers the application controller.
func WithAppController(ac any) Option {
	return internal.WithAppController(ac)
}

// WithRenderer sets the view renderer.
func WithRenderer(r ViewRenderer) Option {
	return internal.WithRenderer(r)
}

// WithDatabase attaches a database helper instead of the one built from
// the database configuration section.
func WithDatabase(h *db.Helper) Option {
	return internal.WithDatabase(h)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithStaticFiles mounts a static file handler at the given pattern.
//
// Example:
//
//	//go:embed public
//	var assets embed.FS
//
//	pebble.New(
//	    pebble.WithStaticFiles("/static/", assets, "public"),
//	)
func WithStaticFiles(pattern string, fsys fs.FS, subDir string) Option {
	return internal.WithStaticFiles(pattern, fsys, subDir)
}

// WithHealthChecks enables health check endpoints.
// Liveness (/health/live): Always returns OK if process is running.
// Readiness (/health/ready): Runs all configured checks, the database
// helper included.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger overrides the logger used by the server runtime.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// Timeouts overrides the read, write and idle timeouts of the HTTP server.
func Timeouts(read, write, idle time.Duration) RunOption {
	return internal.Timeouts(read, write, idle)
}

// StartupHook registers a function to run before the server listens.
// Hooks run concurrently; the first failure aborts the start.
//
// Example:
//
//	pebble.StartupHook(func(ctx context.Context) error {
//	    _, err := app.DB().DB(ctx)
//	    return err
//	})
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Errors

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.NewHTTPError(code, message, opts...)
}

// WithDetail sets the extended description of an HTTPError.
func WithDetail(detail string) HTTPErrorOption {
	return internal.WithDetail(detail)
}

// WithError sets the underlying error of an HTTPError.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrMethodNotAllowed(message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// AsHTTPError extracts the HTTPError from an error chain, or returns nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// AsPanicError extracts the PanicError from an error chain.
func AsPanicError(err error) (*PanicError, bool) {
	return internal.AsPanicError(err)
}

// ParseAction splits "Controller.method" into its parts.
func ParseAction(fullName string) (controller, method string, err error) {
	return internal.ParseAction(fullName)
}

// Context helpers

// ContextValue retrieves a typed value stored with Context.Set.
// Returns the zero value of T if the key is not found or type assertion fails.
func ContextValue[T any](c Context, key any) T {
	return internal.ContextValue[T](c, key)
}

// ConfigValue retrieves a typed configuration value as seen by the request.
//
// Example:
//
//	title := pebble.ConfigValue[string](c, "dictionary.currentPage.title")
func ConfigValue[T any](c Context, path string) T {
	return internal.ConfigValue[T](c, path)
}

// ConfigDefault is ConfigValue with a fallback.
func ConfigDefault[T any](c Context, path string, fallback T) T {
	return internal.ConfigDefault(c, path, fallback)
}

// PageValue retrieves a typed key of dictionary.currentPage.
//
// Example:
//
//	title := pebble.PageValue[string](c, "title")
func PageValue[T any](c Context, path string) T {
	return internal.PageValue[T](c, path)
}

// Param retrieves a typed URL parameter.
func Param[T Scalar](c Context, name string) T {
	return internal.Param[T](c, name)
}

// Query retrieves a typed query parameter.
func Query[T Scalar](c Context, name string) T {
	return internal.Query[T](c, name)
}

// QueryDefault retrieves a typed query parameter with a default value.
func QueryDefault[T Scalar](c Context, name string, fallback T) T {
	return internal.QueryDefault(c, name, fallback)
}
