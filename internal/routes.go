package internal

import (
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrymomot/pebble/pkg/slug"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Reserved route names. They handle errors and are never registered as
// endpoints.
const (
	RouteNotFound = "notFound"
	RouteFatal    = "fatal"
)

// Method is the HTTP method of a route.
type Method int

const (
	MethodGet Method = iota
	MethodPost
)

func (m Method) String() string {
	if m == MethodPost {
		return "POST"
	}
	return "GET"
}

// ParseMethod parses a route method. An empty string means GET.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "", "get":
		return MethodGet, nil
	case "post":
		return MethodPost, nil
	}
	return 0, fmt.Errorf("%w: unsupported method %q", ErrRouteConfig, s)
}

// Route is one entry of the routes configuration section.
type Route struct {
	// Options holds the raw route entry, including keys the framework does
	// not interpret.
	Options tree.Tree
	Name    string
	URL     string
	Action  string
	View    string
	Method  Method
}

// IsReserved reports whether the route is one of the error handlers.
func (r *Route) IsReserved() bool {
	return isReserved(r.Name)
}

func isReserved(name string) bool {
	return name == RouteNotFound || name == RouteFatal
}

// routeTable holds the routes parsed from configuration.
type routeTable struct {
	named    map[string]*Route
	reserved map[string]*Route
	ordered  []*Route
}

// parseRoutes validates the routes section. Routes are returned sorted by
// name so registration order does not depend on map iteration.
func parseRoutes(section any) (*routeTable, error) {
	table := &routeTable{
		named:    make(map[string]*Route),
		reserved: make(map[string]*Route),
	}
	if section == nil {
		return table, nil
	}
	entries, ok := tree.AsMap(section)
	if !ok {
		return nil, fmt.Errorf("%w: routes must be a mapping", ErrRouteConfig)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		route, err := parseRoute(name, entries[name])
		if err != nil {
			return nil, err
		}
		if route.IsReserved() {
			table.reserved[name] = route
			continue
		}
		table.named[name] = route
		table.ordered = append(table.ordered, route)
	}
	return table, nil
}

func parseRoute(name string, raw any) (*Route, error) {
	entry, ok := tree.AsMap(raw)
	if !ok {
		return nil, fmt.Errorf("%w: route %q must be a mapping", ErrRouteConfig, name)
	}

	route := &Route{Name: name, Options: entry}
	var err error
	if route.URL, err = stringField(name, entry, "url"); err != nil {
		return nil, err
	}
	if route.Action, err = stringField(name, entry, "action"); err != nil {
		return nil, err
	}
	if route.View, err = stringField(name, entry, "view"); err != nil {
		return nil, err
	}
	method, err := stringField(name, entry, "method")
	if err != nil {
		return nil, err
	}
	if route.Method, err = ParseMethod(method); err != nil {
		return nil, fmt.Errorf("route %q: %w", name, err)
	}

	if route.URL == "" && !isReserved(name) {
		return nil, fmt.Errorf("%w: route %q has no url", ErrRouteConfig, name)
	}
	if (route.Action == "") == (route.View == "") {
		return nil, fmt.Errorf("%w: route %q needs exactly one of action or view", ErrRouteConfig, name)
	}
	return route, nil
}

func stringField(route string, entry tree.Tree, key string) (string, error) {
	v, ok := entry[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: route %q: %s must be a string", ErrRouteConfig, route, key)
	}
	return s, nil
}

// Path builds the URL of the route. Each {param} segment is replaced by
// the slug of the matching value; chi regexp segments ({id:[0-9]+}) are
// supported.
func (r *Route) Path(params map[string]string) (string, error) {
	pattern := r.URL
	var b strings.Builder
	for {
		start := strings.IndexByte(pattern, '{')
		if start < 0 {
			b.WriteString(pattern)
			return b.String(), nil
		}
		end := closingBrace(pattern, start)
		if end < 0 {
			return "", fmt.Errorf("%w: route %q: unbalanced braces in %q", ErrRouteParam, r.Name, r.URL)
		}

		key, _, _ := strings.Cut(pattern[start+1:end], ":")
		value, ok := params[key]
		if !ok {
			return "", fmt.Errorf("%w: route %q: %s", ErrRouteParam, r.Name, key)
		}
		b.WriteString(pattern[:start])
		b.WriteString(slug.Make(value))
		pattern = pattern[end+1:]
	}
}

func closingBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
