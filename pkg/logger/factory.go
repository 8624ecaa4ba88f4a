package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// ErrLogFile is returned when the critical log file cannot be opened.
var ErrLogFile = errors.New("logger: cannot open log file")

// Config describes the application logger. It is decoded from the "app"
// configuration section, so unrelated keys of that section are ignored.
type Config struct {
	// Output receives the main log stream. Defaults to os.Stdout.
	Output io.Writer `yaml:"-"`

	Env    string       `yaml:"env"`
	Log    FileConfig   `yaml:"log"`
	Sentry SentryConfig `yaml:"sentry"`
	Debug  bool         `yaml:"debug"`
}

// FileConfig configures the critical log file.
type FileConfig struct {
	// File receives error records when the application is not in debug mode.
	File string `yaml:"file"`
	// Level of the main stream: debug, info, warn or error.
	Level string `yaml:"level"`
}

// New creates a JSON-formatted logger with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	log := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	return slog.New(NewLogHandlerDecorator(log, extractors...))
}

// FromConfig builds the logger described by cfg.
//
// Debug mode writes human-readable text at debug level. Otherwise records are
// JSON, and error records are also appended to cfg.Log.File when set. A
// Sentry DSN, from the config or SENTRY_DSN, adds the Sentry handler.
//
// A sink that cannot be set up is skipped and reported in the returned
// error; the logger is always usable.
func FromConfig(cfg Config, extractors ...ContextExtractor) (*slog.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level := parseLevel(cfg.Log.Level, cfg.Debug)
	opts := &slog.HandlerOptions{Level: level}

	var main slog.Handler
	if cfg.Debug {
		main = slog.NewTextHandler(out, opts)
	} else {
		main = slog.NewJSONHandler(out, opts)
	}

	targets := []sink{{name: "console", handler: main}}
	var errs []error

	if !cfg.Debug && cfg.Log.File != "" {
		h, err := fileHandler(cfg.Log.File)
		if err != nil {
			errs = append(errs, err)
		} else {
			targets = append(targets, sink{name: "file", handler: h})
		}
	}

	sentryCfg := cfg.Sentry
	if fromEnv, err := env.ParseAs[SentryConfig](); err == nil {
		// Values from the config file take precedence.
		_ = mergo.Merge(&sentryCfg, fromEnv)
	}
	if cfg.Env != "" && (sentryCfg.Environment == "" || sentryCfg.Environment == defaultSentryEnvironment) {
		sentryCfg.Environment = cfg.Env
	}
	if sentryCfg.DSN != "" {
		h, err := newSentryHandler(sentryCfg)
		if err != nil {
			errs = append(errs, err)
		} else {
			targets = append(targets, sink{name: "sentry", handler: h})
		}
	}

	return slog.New(NewLogHandlerDecorator(combine(targets...), extractors...)), errors.Join(errs...)
}

// fileHandler appends JSON error records to path.
func fileHandler(path string) (slog.Handler, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLogFile, err)
	}
	return slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelError}), nil
}

func parseLevel(s string, debug bool) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "info":
		return slog.LevelInfo
	}
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
