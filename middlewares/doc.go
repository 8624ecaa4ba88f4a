// Package middlewares provides global middleware for pebble applications.
//
// # Request ID
//
// RequestID assigns an ID to each request. An incoming X-Request-ID or
// X-Correlation-ID header is reused, otherwise a UUID is generated. The ID
// is echoed in the X-Request-ID response header and can be added to every
// log record:
//
//	app, err := pebble.New(
//	    pebble.WithLogger(slog.Default(), middlewares.RequestIDExtractor()),
//	    pebble.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics raised by middleware registered after it into a
// *PanicError. The router recovers panics inside actions on its own, so
// Recover is only needed around middleware that may panic. The error then
// follows the usual path: the fatal route in production, a plain text
// response with the stack in debug mode.
//
//	pebble.WithMiddleware(
//	    middlewares.RequestID(),
//	    middlewares.Recover(),
//	)
package middlewares
