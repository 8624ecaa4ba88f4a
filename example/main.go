// Command example serves a small notes site built from the configs and
// views directories next to it.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/dmitrymomot/pebble"
	"github.com/dmitrymomot/pebble/example/controllers"
	"github.com/dmitrymomot/pebble/middlewares"
	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/logger"
	"github.com/dmitrymomot/pebble/pkg/view"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("cannot read .env", "error", err)
		os.Exit(1)
	}

	env, err := config.ParseEnv()
	if err != nil {
		slog.Error("invalid environment", "error", err)
		os.Exit(1)
	}

	cfg, err := config.LoadDir(env.Dir, env.Options()...)
	if err != nil {
		slog.Error("cannot load configuration", "error", err)
		os.Exit(1)
	}

	var logCfg logger.Config
	if err := config.Decode(cfg, config.BootstrapName, &logCfg); err != nil {
		slog.Error("invalid app section", "error", err)
		os.Exit(1)
	}
	log, err := logger.FromConfig(logCfg, middlewares.RequestIDExtractor())
	if err != nil {
		log.Warn("logger sink unavailable", "error", err)
	}

	renderer := view.New(os.DirFS("views"),
		view.WithPartials("layouts/*.html"),
		view.WithDebug(logCfg.Debug),
	)

	app, err := pebble.New(
		pebble.WithConfig(cfg),
		pebble.WithLogger(log),
		pebble.WithRenderer(renderer),
		pebble.WithAppController(&controllers.Site{}),
		pebble.WithController("Notes", controllers.NewNotes),
		pebble.WithMiddleware(
			middlewares.RequestID(),
			middlewares.Recover(),
		),
		pebble.WithStaticFiles("/static/", os.DirFS("public"), ""),
		pebble.WithHealthChecks(),
	)
	if err != nil {
		log.Error("cannot build application", "error", err)
		os.Exit(1)
	}

	if err := app.Run(
		pebble.Address(env.Address),
		pebble.StartupHook(controllers.Warmup(app)),
	); err != nil {
		log.Error("application error", "error", err)
		os.Exit(1)
	}
}
