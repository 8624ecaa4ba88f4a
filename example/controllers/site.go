package controllers

import (
	"context"
	"errors"

	"github.com/dmitrymomot/pebble"
	"github.com/dmitrymomot/pebble/middlewares"
)

// Site is the application controller.
type Site struct{}

// InitApp fails fast when notes are routed without a database.
func (s *Site) InitApp(app *pebble.App) error {
	if _, ok := app.Route("notes"); ok && app.DB() == nil {
		return errors.New("notes routes need a database section")
	}
	return nil
}

// BeforeView exposes the request ID to every template.
func (s *Site) BeforeView(c pebble.Context, _ string, vars map[string]any) error {
	vars["requestID"] = middlewares.GetRequestID(c)
	return nil
}

// Warmup connects to the database before the server starts listening, so
// a missing schema is created ahead of the first request.
func Warmup(app *pebble.App) func(context.Context) error {
	return func(ctx context.Context) error {
		if app.DB() == nil {
			return nil
		}
		return app.DB().Connect(ctx)
	}
}
