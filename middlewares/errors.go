package middlewares

import "github.com/dmitrymomot/pebble/internal"

// PanicError is returned by Recover. It is the same type the router uses for
// panics raised inside actions, so the fatal route sees one error type.
type PanicError = internal.PanicError

// IsPanicError returns true if the error chain holds a PanicError.
func IsPanicError(err error) bool {
	_, ok := internal.AsPanicError(err)
	return ok
}

// AsPanicError extracts the PanicError from an error if present.
func AsPanicError(err error) (*PanicError, bool) {
	return internal.AsPanicError(err)
}
