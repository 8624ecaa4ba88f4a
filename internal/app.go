package internal

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/db"
	"github.com/dmitrymomot/pebble/pkg/health"
	"github.com/dmitrymomot/pebble/pkg/logger"
	"github.com/dmitrymomot/pebble/pkg/mustache"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Server defaults.
const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

const (
	routesKey   = "routes"
	databaseKey = "database"
)

// App is the application context: configuration, route table, controller
// registry, view renderer and database helper, built once by New and shared
// by every request.
type App struct {
	router        chi.Router
	config        tree.Tree
	loadConfig    func() (tree.Tree, error)
	routes        *routeTable
	dispatcher    *Dispatcher
	controllers   map[string]ControllerFactory
	renderer      ViewRenderer
	appController any
	db            *db.Helper
	healthConfig  *healthConfig
	logger        *slog.Logger
	debug         *bool
	middlewares   []Middleware
	staticRoutes  []staticRoute
	pendingTokens bool
}

// staticRoute represents a static file handler mount point.
type staticRoute struct {
	handler http.Handler
	pattern string
}

// New builds the application. It loads the configuration, validates the
// routes section and registers one handler per route. Configuration and
// route errors are returned; the App must not serve traffic without them
// resolved.
//
// Example:
//
//	app, err := pebble.New(
//	    pebble.WithConfigDir("configs"),
//	    pebble.WithController("Pages", controllers.NewPages),
//	    pebble.WithRenderer(view.New(views)),
//	)
func New(opts ...Option) (*App, error) {
	a := &App{
		router:      chi.NewRouter(),
		config:      tree.Tree{},
		controllers: make(map[string]ControllerFactory),
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.loadConfig != nil {
		cfg, err := a.loadConfig()
		if err != nil {
			return nil, err
		}
		a.config = cfg
	}
	a.pendingTokens = mustache.TreeHasTokens(a.config)

	if a.debug == nil {
		debug, _ := tree.Traverse("app.debug", a.config).(bool)
		a.debug = &debug
	}
	if a.logger == nil {
		a.logger = a.defaultLogger()
	}

	if a.db == nil && a.config[databaseKey] != nil {
		helper, err := db.FromTree(a.config, db.WithLogger(a.logger))
		if err != nil {
			return nil, err
		}
		a.db = helper
	}

	routes, err := parseRoutes(a.config[routesKey])
	if err != nil {
		return nil, err
	}
	a.routes = routes
	a.dispatcher = newDispatcher(a, a.controllers)
	if binder, ok := a.renderer.(URLBinder); ok {
		binder.BindURLs(a.URL)
	}

	if a.db != nil && a.healthConfig != nil {
		if _, ok := a.healthConfig.checks["db"]; !ok {
			WithReadinessCheck("db", db.Healthcheck(a.db))(a.healthConfig)
		}
	}

	a.setupRoutes()

	if initializer, ok := a.appController.(AppInitializer); ok {
		if err := initializer.InitApp(a); err != nil {
			return nil, fmt.Errorf("pebble: init app: %w", err)
		}
	}
	return a, nil
}

// defaultLogger builds the logger described by the app config section.
func (a *App) defaultLogger() *slog.Logger {
	var cfg logger.Config
	if err := config.Decode(a.config, config.BootstrapName, &cfg); err != nil {
		l := logger.New()
		l.Error("invalid logger configuration", slog.String("error", err.Error()))
		return l
	}
	cfg.Debug = *a.debug
	l, err := logger.FromConfig(cfg)
	if err != nil {
		l.Error("logger sink unavailable", slog.String("error", err.Error()))
	}
	return l
}

// Router returns the underlying chi.Router for the App.
func (a *App) Router() chi.Router {
	return a.router
}

// ServeHTTP makes the App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Config returns the loaded configuration tree. It is shared by all
// requests and must be treated as read-only; request-scoped values are
// available from Context.Config.
func (a *App) Config() tree.Tree {
	return a.config
}

// ConfigValue returns the loaded configuration value at a dot path.
func (a *App) ConfigValue(path string) any {
	return tree.Traverse(path, a.config)
}

// Env returns the active environment name.
func (a *App) Env() string {
	env, _ := tree.Traverse("app.env", a.config).(string)
	return env
}

// Debug reports whether errors surface directly instead of reaching the
// fatal route.
func (a *App) Debug() bool {
	return *a.debug
}

// Logger returns the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Dispatcher returns the controller registry.
func (a *App) Dispatcher() *Dispatcher {
	return a.dispatcher
}

// DB returns the database helper, or nil if none is configured. A helper
// is created from the database section when WithDatabase is not used; it
// connects on first use.
func (a *App) DB() *db.Helper {
	return a.db
}

// Routes returns the routable entries in registration order.
func (a *App) Routes() []*Route {
	return a.routes.ordered
}

// Route returns a route by name, reserved routes included.
func (a *App) Route(name string) (*Route, bool) {
	if r, ok := a.routes.named[name]; ok {
		return r, true
	}
	r, ok := a.routes.reserved[name]
	return r, ok
}

// URL builds the path of a named route, slugifying its parameters.
func (a *App) URL(name string, params map[string]string) (string, error) {
	route, ok := a.routes.named[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	return route.Path(params)
}

// Run starts the HTTP server and blocks until shutdown.
// A configured database helper is closed during shutdown.
//
// Example:
//
//	err := app.Run(pebble.Address(":8080"))
func (a *App) Run(opts ...RunOption) error {
	cfg := a.serverSettings(opts)
	if a.db != nil {
		cfg.shutdown = append(cfg.shutdown, db.Shutdown(a.db))
	}
	return runServer(cfg)
}

// setupRoutes configures the router with middleware, health endpoints and
// the routes table.
func (a *App) setupRoutes() {
	// Apply global middleware
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	a.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		a.serveReserved(w, r, RouteNotFound, ErrNotFound("Page not found"))
	})
	a.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		a.serveReserved(w, r, RouteNotFound, ErrMethodNotAllowed("Method not allowed"))
	})

	// Mount static file handlers
	for _, sr := range a.staticRoutes {
		a.router.Mount(sr.pattern, sr.handler)
	}

	// Register health check endpoints
	if a.healthConfig != nil {
		a.router.Get(a.healthConfig.livenessPath, health.LivenessHandler())
		a.router.Get(a.healthConfig.readinessPath, health.ReadinessHandler(a.healthConfig.checks, health.WithLogger(a.logger)))
	}

	for _, route := range a.routes.ordered {
		switch route.Method {
		case MethodPost:
			a.router.Post(route.URL, a.routeHandler(route))
		default:
			a.router.Get(route.URL, a.routeHandler(route))
		}
	}
}

// adaptMiddleware converts a pebble Middleware to chi middleware.
// This adapter allows middleware to be written using the pebble Context interface
// while satisfying chi's http.Handler-based middleware signature.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Create a HandlerFunc that calls the next http.Handler
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			c := newContext(w, r, a)
			if err := mw(nextFunc)(c); err != nil {
				a.handleError(c, err)
			}
		})
	}
}

