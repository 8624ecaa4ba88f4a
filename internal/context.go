package internal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Context provides request/response access and helper methods.
// It also implements context.Context by delegating to the underlying request context.
type Context interface {
	context.Context

	// Request returns the underlying *http.Request.
	Request() *http.Request

	// Response returns the underlying http.ResponseWriter.
	Response() http.ResponseWriter

	// Context returns the request's context.Context.
	Context() context.Context

	// App returns the application handling the request.
	App() *App

	// Param returns the URL parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Param(name string) string

	// Query returns the query parameter value by name.
	// Returns empty string if the parameter doesn't exist.
	Query(name string) string

	// QueryDefault returns the query parameter value or a default.
	QueryDefault(name, defaultValue string) string

	// Form returns the form value by name.
	Form(name string) string

	// Header returns the request header value by name.
	Header(name string) string

	// SetHeader sets a response header.
	SetHeader(name, value string)

	// JSON writes a JSON response with the given status code.
	JSON(code int, v any) error

	// String writes a plain text response with the given status code.
	String(code int, s string) error

	// NoContent writes a response with no body.
	NoContent(code int) error

	// Redirect redirects to the given URL with the given status code.
	Redirect(code int, url string) error

	// RedirectToRoute redirects to a named route with 302 Found.
	RedirectToRoute(name string, params map[string]string) error

	// Error creates and returns an HTTPError without writing a response.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Render renders a component with the given status code.
	// Compatible with templ.Component.
	Render(code int, component Component) error

	// View renders a named view with the view vars bag.
	// If a redirect is pending (see SetRedirect) it is issued instead.
	View(code int, name string, vars tree.Tree) error

	// SetRedirect registers a redirect that replaces the next View call.
	SetRedirect(url string)

	// Route returns the matched route, or nil outside the routing lifecycle.
	Route() *Route

	// RouteName returns the matched route name.
	RouteName() string

	// Exception returns the error attached to the notFound and fatal routes.
	Exception() error

	// Config returns the configuration tree as seen by this request,
	// including the server and dictionary.currentPage subtrees.
	Config() tree.Tree

	// ConfigValue returns the configuration value at a dot path.
	ConfigValue(path string) any

	// Server returns the server subtree: scheme, hostName, host and base.
	Server() tree.Tree

	// Dictionary returns the request's dictionary subtree.
	Dictionary() tree.Tree

	// CurrentPage returns dictionary.currentPage for the matched route.
	CurrentPage() tree.Tree

	// InjectCurrentPage merges override into dictionary.currentPage.
	InjectCurrentPage(override tree.Tree)

	// Written returns true if a response has already been written.
	Written() bool

	// ResponseWriter returns the wrapped response writer.
	ResponseWriter() *ResponseWriter

	// Logger returns the logger for advanced usage.
	Logger() *slog.Logger

	// LogDebug logs a debug message with optional attributes.
	LogDebug(msg string, attrs ...any)

	// LogInfo logs an info message with optional attributes.
	LogInfo(msg string, attrs ...any)

	// LogWarn logs a warning message with optional attributes.
	LogWarn(msg string, attrs ...any)

	// LogError logs an error message with optional attributes.
	LogError(msg string, attrs ...any)

	// Set stores a value in the request context.
	// The value can be retrieved using Get or from c.Context().Value(key).
	Set(key any, value any)

	// Get retrieves a value from the request context.
	// Returns nil if the key is not found.
	Get(key any) any
}

// requestContext implements the Context interface.
type requestContext struct {
	response       http.ResponseWriter
	request        *http.Request
	responseWriter *ResponseWriter
	app            *App
}

// newContext creates a new context with the response wrapper.
// An already wrapped writer is reused so write tracking is shared across
// middleware.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &requestContext{
		request:        r,
		response:       rw,
		responseWriter: rw,
		app:            app,
	}
}

func (c *requestContext) Request() *http.Request {
	return c.request
}

func (c *requestContext) Response() http.ResponseWriter {
	return c.response
}

func (c *requestContext) Context() context.Context {
	return c.request.Context()
}

func (c *requestContext) App() *App {
	return c.app
}

func (c *requestContext) Param(name string) string {
	return chi.URLParam(c.request, name)
}

func (c *requestContext) Query(name string) string {
	return c.request.URL.Query().Get(name)
}

func (c *requestContext) QueryDefault(name, defaultValue string) string {
	v := c.request.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}
	return v
}

func (c *requestContext) Form(name string) string {
	return c.request.FormValue(name)
}

func (c *requestContext) Deadline() (time.Time, bool) {
	return c.request.Context().Deadline()
}

func (c *requestContext) Done() <-chan struct{} {
	return c.request.Context().Done()
}

func (c *requestContext) Err() error {
	return c.request.Context().Err()
}

func (c *requestContext) Value(key any) any {
	return c.request.Context().Value(key)
}

func (c *requestContext) Header(name string) string {
	return c.request.Header.Get(name)
}

func (c *requestContext) SetHeader(name, value string) {
	c.response.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	c.response.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.response.WriteHeader(code)
	return json.NewEncoder(c.response).Encode(v)
}

func (c *requestContext) String(code int, s string) error {
	c.response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := c.response.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.response.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.response, c.request, url, code)
	return nil
}

func (c *requestContext) RedirectToRoute(name string, params map[string]string) error {
	url, err := c.app.URL(name, params)
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, url)
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(code, message, opts...)
}

func (c *requestContext) Render(code int, component Component) error {
	c.response.Header().Set("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	return component.Render(c.request.Context(), c.response)
}

func (c *requestContext) View(code int, name string, vars tree.Tree) error {
	if s := c.scope(); s.redirect != "" {
		return c.Redirect(http.StatusFound, s.redirect)
	}
	return c.app.renderView(c, code, name, vars)
}

func (c *requestContext) SetRedirect(url string) {
	c.scope().redirect = url
}

func (c *requestContext) Route() *Route {
	return c.scope().route
}

func (c *requestContext) RouteName() string {
	if r := c.Route(); r != nil {
		return r.Name
	}
	return ""
}

func (c *requestContext) Exception() error {
	return c.scope().exception
}

func (c *requestContext) Config() tree.Tree {
	return c.app.requestConfig(c.scope())
}

func (c *requestContext) ConfigValue(path string) any {
	return tree.Traverse(path, c.Config())
}

func (c *requestContext) Server() tree.Tree {
	c.Config()
	return c.scope().server
}

func (c *requestContext) Dictionary() tree.Tree {
	c.Config()
	return c.scope().dictionary
}

func (c *requestContext) CurrentPage() tree.Tree {
	page, _ := tree.AsMap(c.Dictionary()[currentPageKey])
	return page
}

func (c *requestContext) InjectCurrentPage(override tree.Tree) {
	c.Config()
	c.scope().injectCurrentPage(override)
}

func (c *requestContext) Written() bool {
	return c.responseWriter.Written()
}

func (c *requestContext) ResponseWriter() *ResponseWriter {
	return c.responseWriter
}

func (c *requestContext) Logger() *slog.Logger {
	return c.app.logger
}

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.app.logger.DebugContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.app.logger.InfoContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.app.logger.WarnContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.app.logger.ErrorContext(c.request.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	ctx := context.WithValue(c.request.Context(), key, value)
	c.request = c.request.WithContext(ctx)
}

func (c *requestContext) Get(key any) any {
	return c.request.Context().Value(key)
}

// scope returns the routing state of the request. Contexts created outside
// the routing lifecycle (global middleware) get an empty scope so accessors
// never fail.
func (c *requestContext) scope() *scope {
	if s := scopeFrom(c.request.Context()); s != nil {
		return s
	}
	s := c.app.newScope(c.request, nil, nil)
	c.Set(scopeKey{}, s)
	return s
}
