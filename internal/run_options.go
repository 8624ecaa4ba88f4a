package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// RunOption configures App.Run.
type RunOption func(*serverConfig)

// serverConfig is everything runServer needs. App.Run seeds it from the
// App and its configuration before applying options.
type serverConfig struct {
	handler  http.Handler
	logger   *slog.Logger
	baseCtx  context.Context
	address  string
	timeouts serverTimeouts
	startup  []func(context.Context) error
	shutdown []func(context.Context) error
}

type serverTimeouts struct {
	read, write, idle, shutdown time.Duration
}

func (a *App) serverSettings(opts []RunOption) serverConfig {
	cfg := serverConfig{
		handler: a.router,
		logger:  a.logger,
		address: defaultAddress,
		timeouts: serverTimeouts{
			read:     defaultReadTimeout,
			write:    defaultWriteTimeout,
			idle:     defaultIdleTimeout,
			shutdown: defaultShutdownTimeout,
		},
	}
	if addr, ok := a.ConfigValue("app.address").(string); ok && addr != "" {
		cfg.address = addr
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Address sets the listen address. It takes precedence over app.address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return func(c *serverConfig) {
		if addr != "" {
			c.address = addr
		}
	}
}

// Logger overrides the logger of the server runtime.
// Defaults to the App logger.
func Logger(l *slog.Logger) RunOption {
	return func(c *serverConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownTimeout bounds the graceful shutdown: draining the server and
// running every shutdown hook. Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *serverConfig) {
		if d > 0 {
			c.timeouts.shutdown = d
		}
	}
}

// Timeouts overrides the read, write and idle timeouts of the HTTP server.
// Zero values keep the defaults.
func Timeouts(read, write, idle time.Duration) RunOption {
	return func(c *serverConfig) {
		if read > 0 {
			c.timeouts.read = read
		}
		if write > 0 {
			c.timeouts.write = write
		}
		if idle > 0 {
			c.timeouts.idle = idle
		}
	}
}

// StartupHook registers a function run before the listener opens, such as
// connecting the database. Hooks run concurrently and any error aborts the
// start.
//
// Example:
//
//	pebble.StartupHook(func(ctx context.Context) error {
//	    return helper.Connect(ctx)
//	})
func StartupHook(fn func(context.Context) error) RunOption {
	return func(c *serverConfig) {
		if fn != nil {
			c.startup = append(c.startup, fn)
		}
	}
}

// ShutdownHook registers a cleanup function. Hooks run in registration
// order after the server stops, sharing the shutdown deadline.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *serverConfig) {
		if fn != nil {
			c.shutdown = append(c.shutdown, fn)
		}
	}
}

// WithContext sets the parent of the signal-aware context. Cancelling it
// stops the server like SIGTERM does.
func WithContext(ctx context.Context) RunOption {
	return func(c *serverConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
