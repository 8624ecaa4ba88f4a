package internal

import (
	"context"
	"io"
)

// HandlerFunc is the signature for controller actions and middleware chains.
// It receives a Context and returns an error.
// Returning a non-nil error routes the request to the fatal route.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next pebble.HandlerFunc) pebble.HandlerFunc {
//	    return func(c pebble.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Redirect(302, "/login")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// Component is the interface for renderable templates.
// This is compatible with templ.Component.
type Component interface {
	Render(ctx context.Context, w io.Writer) error
}

// Controller groups the actions routes refer to as "Controller.method".
//
// Example:
//
//	type Pages struct{ db *db.Helper }
//
//	func (p *Pages) Actions() map[string]pebble.HandlerFunc {
//	    return map[string]pebble.HandlerFunc{
//	        "show": p.show,
//	    }
//	}
type Controller interface {
	Actions() map[string]HandlerFunc
}

// ControllerFactory creates a controller. It is called once per App, on
// the first request that needs the controller.
type ControllerFactory func(a *App) Controller

// AppInitializer is implemented by an app controller that prepares shared
// dependencies once the App is built.
type AppInitializer interface {
	InitApp(a *App) error
}

// BeforeActionHook is implemented by an app controller that runs before
// every routed action or view. A hook that writes the response skips the
// route.
type BeforeActionHook interface {
	BeforeAction(c Context) error
}

// BeforeViewHook is implemented by an app controller that runs before every
// view is rendered. vars may be modified in place.
type BeforeViewHook interface {
	BeforeView(c Context, view string, vars map[string]any) error
}
