package internal

import (
	"strconv"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Scalar lists the types request parameters can be parsed into.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue retrieves a typed value stored with Context.Set.
func ContextValue[T any](c Context, key any) T {
	return as[T](c.Get(key))
}

// ConfigValue retrieves a typed configuration value as seen by the request,
// so placeholders such as {{server.base}} are already rendered.
// Returns the zero value if the path is missing or holds another type.
func ConfigValue[T any](c Context, path string) T {
	return as[T](c.ConfigValue(path))
}

// ConfigDefault is ConfigValue with a fallback for missing or mistyped paths.
func ConfigDefault[T any](c Context, path string, fallback T) T {
	if v, ok := c.ConfigValue(path).(T); ok {
		return v
	}
	return fallback
}

// PageValue retrieves a typed key of dictionary.currentPage, including any
// override injected by the action.
func PageValue[T any](c Context, path string) T {
	return as[T](tree.Traverse(path, c.CurrentPage()))
}

// Param retrieves a typed URL parameter.
func Param[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query retrieves a typed query parameter.
func Query[T Scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault retrieves a typed query parameter, or fallback when it is
// absent or does not parse.
func QueryDefault[T Scalar](c Context, name string, fallback T) T {
	if v, ok := parseScalar[T](c.Query(name)); ok {
		return v
	}
	return fallback
}

func as[T any](v any) T {
	t, _ := v.(T)
	return t
}

// parseScalar parses raw into T. An empty raw value never parses, except
// for strings.
func parseScalar[T Scalar](raw string) (T, bool) {
	var out T
	var err error
	switch p := any(&out).(type) {
	case *string:
		*p = raw
		return out, raw != ""
	case *int:
		*p, err = strconv.Atoi(raw)
	case *int64:
		*p, err = strconv.ParseInt(raw, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(raw, 64)
	case *bool:
		*p, err = strconv.ParseBool(raw)
	default:
		return out, false
	}
	if err != nil {
		var zero T
		return zero, false
	}
	return out, true
}
