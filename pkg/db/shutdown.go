package db

import (
	"context"
	"errors"
)

// Healthcheck returns a readiness check that connects if needed and pings
// the database.
//
// Example:
//
//	pebble.WithHealthChecks(pebble.WithReadinessCheck("db", db.Healthcheck(helper)))
func Healthcheck(h *Helper) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		conn, err := h.conn(ctx)
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if err := conn.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a function that closes the helper's connection.
// Use with pebble.ShutdownHook; App.Run registers it for the helper passed
// to pebble.WithDatabase.
//
// Example:
//
//	app.Run(pebble.ShutdownHook(db.Shutdown(helper)))
func Shutdown(h *Helper) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return h.Close()
	}
}
