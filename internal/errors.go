package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for routing and dispatch.
var (
	// ErrRouteConfig is returned by New when the routes section is malformed.
	ErrRouteConfig = errors.New("pebble: invalid route configuration")

	// ErrRouteNotFound is returned when a route name is not registered.
	ErrRouteNotFound = errors.New("pebble: route not found")

	// ErrRouteParam is returned when a URL cannot be built for a route.
	ErrRouteParam = errors.New("pebble: missing route parameter")

	// ErrDispatch is wrapped by every action dispatch failure.
	ErrDispatch = errors.New("pebble: dispatch failed")

	ErrInvalidAction      = errors.New("pebble: action must have the form Controller.method")
	ErrControllerNotFound = errors.New("pebble: controller not registered")
	ErrActionNotFound     = errors.New("pebble: action not found")

	// ErrNoRenderer is returned when a view is rendered without a configured renderer.
	ErrNoRenderer = errors.New("pebble: no view renderer configured")
	ErrViewRender = errors.New("pebble: view rendering failed")
)

func dispatchError(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: "+format, append([]any{ErrDispatch, kind}, args...)...)
}

// HTTPError represents an HTTP error with all data needed for rendering.
// It is attached to the notFound route as the request exception, and any
// handler may return one to select the status code of the fatal route.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Detail is an optional extended description.
	Detail string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{
		Code:    code,
		Message: message,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrMethodNotAllowed(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusMethodNotAllowed, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

// AsHTTPError extracts the HTTPError from an error chain if present.
// Returns nil if the chain holds no HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// PanicError represents a panic recovered while handling a request.
type PanicError struct {
	Value any    // The panic value
	Stack []byte // Stack trace (nil if disabled)
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	var pe *PanicError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// statusOf returns the HTTP status carried by err, or 500.
func statusOf(err error) int {
	if he := AsHTTPError(err); he != nil && he.Code > 0 {
		return he.Code
	}
	return http.StatusInternalServerError
}
