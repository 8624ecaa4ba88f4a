package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
)

const panicStackSize = 4096

// routeHandler binds a route of the table to the request lifecycle.
func (a *App) routeHandler(route *Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.serve(w, r, route, nil)
	}
}

// serveReserved re-enters the lifecycle with the notFound or fatal route.
// Without a configured route a plain text response is written.
func (a *App) serveReserved(w http.ResponseWriter, r *http.Request, name string, exception error) {
	route, ok := a.routes.reserved[name]
	if !ok {
		status := statusOf(exception)
		http.Error(w, http.StatusText(status), status)
		return
	}
	a.serve(w, r, route, exception)
}

// serve runs a matched route: it attaches a fresh request scope, dispatches
// the route and handles the returned error.
func (a *App) serve(w http.ResponseWriter, r *http.Request, route *Route, exception error) {
	s := a.newScope(r, route, exception)
	r = r.WithContext(context.WithValue(r.Context(), scopeKey{}, s))
	c := newContext(w, r, a)

	err := a.dispatch(c, route)
	if err == nil {
		return
	}
	if route.Name == RouteFatal {
		a.logger.ErrorContext(c.Context(), "fatal route failed",
			slog.String("error", err.Error()),
			slog.Any("exception", exception),
		)
		if !c.Written() {
			http.Error(c.Response(), http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}
	a.handleError(c, err)
}

// dispatch invokes the route action, or renders its view when the route has
// no action. Panics are returned as *PanicError.
func (a *App) dispatch(c *requestContext, route *Route) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			stack := make([]byte, panicStackSize)
			stack = stack[:runtime.Stack(stack, false)]
			err = &PanicError{Value: rec, Stack: stack}
		}
	}()

	if hook, ok := a.appController.(BeforeActionHook); ok {
		if err := hook.BeforeAction(c); err != nil {
			return err
		}
		if c.Written() {
			return nil
		}
	}

	switch {
	case route.Action != "":
		return a.dispatcher.CallAction(c, route.Action)
	case route.View != "":
		status := http.StatusOK
		if exception := c.Exception(); exception != nil {
			status = statusOf(exception)
		}
		return c.View(status, route.View, nil)
	}
	return fmt.Errorf("%w: route %q has neither action nor view", ErrRouteConfig, route.Name)
}

// handleError routes an uncaught error to a reserved route. A 404 raised
// outside the notFound route goes to notFound; anything else goes to fatal,
// or is written directly in debug mode.
func (a *App) handleError(c Context, err error) {
	if statusOf(err) == http.StatusNotFound && c.RouteName() != RouteNotFound {
		a.logger.InfoContext(c.Context(), "resource not found",
			slog.String("route", c.RouteName()),
			slog.String("error", err.Error()),
		)
		if !c.Written() {
			a.serveReserved(c.Response(), c.Request(), RouteNotFound, err)
		}
		return
	}

	a.logger.ErrorContext(c.Context(), "request failed",
		slog.String("route", c.RouteName()),
		slog.String("error", err.Error()),
	)

	if c.Written() {
		return
	}
	if a.Debug() {
		a.surfaceError(c, err)
		return
	}
	a.serveReserved(c.Response(), c.Request(), RouteFatal, err)
}

// surfaceError writes the error, and the panic stack if any, as plain text.
func (a *App) surfaceError(c Context, err error) {
	body := err.Error()
	if pe, ok := AsPanicError(err); ok && len(pe.Stack) > 0 {
		body += "\n\n" + string(pe.Stack)
	}
	_ = c.String(statusOf(err), body)
}
