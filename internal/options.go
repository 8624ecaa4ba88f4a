package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/db"
	"github.com/dmitrymomot/pebble/pkg/logger"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Option configures the application.
type Option func(*App)

// WithConfig uses an already loaded configuration tree.
func WithConfig(cfg tree.Tree) Option {
	return func(a *App) {
		if cfg != nil {
			a.config = cfg
			a.loadConfig = nil
		}
	}
}

// WithConfigFS loads the configuration from fsys when the App is built.
//
// Example:
//
//	//go:embed configs
//	var configs embed.FS
//
//	sub, _ := fs.Sub(configs, "configs")
//	pebble.New(pebble.WithConfigFS(sub, config.WithEnv("staging")))
func WithConfigFS(fsys fs.FS, opts ...config.Option) Option {
	return func(a *App) {
		a.loadConfig = func() (tree.Tree, error) {
			return config.Load(fsys, opts...)
		}
	}
}

// WithConfigDir loads the configuration from a directory on disk.
func WithConfigDir(dir string, opts ...config.Option) Option {
	return func(a *App) {
		a.loadConfig = func() (tree.Tree, error) {
			return config.LoadDir(dir, opts...)
		}
	}
}

// WithDebug overrides app.debug from the configuration.
func WithDebug(debug bool) Option {
	return func(a *App) {
		a.debug = &debug
	}
}

// WithLogger sets a custom logger for the application.
// Optional extractors add request-scoped attributes to every record.
// Without it, the logger is built from the app configuration section.
//
// Example:
//
//	pebble.New(
//	    pebble.WithLogger(slog.Default(), middlewares.RequestIDExtractor()),
//	)
func WithLogger(l *slog.Logger, extractors ...logger.ContextExtractor) Option {
	return func(a *App) {
		if l == nil {
			return
		}
		if len(extractors) > 0 {
			l = slog.New(logger.NewLogHandlerDecorator(l.Handler(), extractors...))
		}
		a.logger = l
	}
}

// WithController registers a controller factory under name. Routes refer
// to its actions as "name.action".
func WithController(name string, factory ControllerFactory) Option {
	return func(a *App) {
		if name != "" && factory != nil {
			a.controllers[name] = factory
		}
	}
}

// WithControllers registers several controller factories at once.
func WithControllers(factories map[string]ControllerFactory) Option {
	return func(a *App) {
		for name, factory := range factories {
			WithController(name, factory)(a)
		}
	}
}

// WithAppController registers the application controller. It may implement
// AppInitializer, BeforeActionHook and BeforeViewHook.
func WithAppController(ac any) Option {
	return func(a *App) {
		a.appController = ac
	}
}

// WithRenderer sets the view renderer used by routes with a view and by
// Context.View.
func WithRenderer(r ViewRenderer) Option {
	return func(a *App) {
		a.renderer = r
	}
}

// WithDatabase attaches a database helper. It is closed on shutdown and,
// with health checks enabled, checked by the readiness probe.
func WithDatabase(h *db.Helper) Option {
	return func(a *App) {
		a.db = h
	}
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mw...)
	}
}

// WithStaticFiles mounts a static file handler at the given pattern.
// Directory listings are disabled.
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
	return func(a *App) {
		if subDir != "" {
			sub, err := fs.Sub(fsys, subDir)
			if err != nil {
				return
			}
			fsys = sub
		}
		prefix := strings.TrimSuffix(pattern, "/")
		handler := http.StripPrefix(prefix, http.FileServer(noDirFS{http.FS(fsys)}))
		a.staticRoutes = append(a.staticRoutes, staticRoute{pattern: prefix, handler: handler})
	}
}

// WithHealthChecks enables liveness and readiness endpoints.
func WithHealthChecks(opts ...HealthOption) Option {
	return func(a *App) {
		cfg := &healthConfig{
			livenessPath:  defaultLivenessPath,
			readinessPath: defaultReadinessPath,
		}
		for _, opt := range opts {
			opt(cfg)
		}
		a.healthConfig = cfg
	}
}

// noDirFS hides directory listings from http.FileServer.
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		index, err := n.fs.Open(strings.TrimSuffix(name, "/") + "/index.html")
		if err != nil {
			_ = f.Close()
			return nil, fs.ErrNotExist
		}
		_ = index.Close()
	}
	return f, nil
}
