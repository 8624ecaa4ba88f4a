package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// sink is one destination of the application logger: the console stream,
// the critical log file or Sentry.
type sink struct {
	name    string
	handler slog.Handler
}

// sinks fans every record out to each sink that accepts its level. A sink
// that fails to write does not keep the record from the others.
type sinks []sink

// combine returns the only handler unchanged, or a fan-out over all of them.
func combine(s ...sink) slog.Handler {
	if len(s) == 1 {
		return s[0].handler
	}
	return sinks(s)
}

func (s sinks) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sk := range s {
		if sk.handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (s sinks) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, sk := range s {
		if !sk.handler.Enabled(ctx, rec.Level) {
			continue
		}
		if err := sk.handler.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, fmt.Errorf("logger: %s sink: %w", sk.name, err))
		}
	}
	return errors.Join(errs...)
}

func (s sinks) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s sinks) WithGroup(name string) slog.Handler {
	return s.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (s sinks) each(fn func(slog.Handler) slog.Handler) sinks {
	out := make(sinks, len(s))
	for i, sk := range s {
		out[i] = sink{name: sk.name, handler: fn(sk.handler)}
	}
	return out
}
