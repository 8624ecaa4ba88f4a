// Package mustache implements a minimal placeholder engine.
//
// Placeholders have the form {{path.to.value}} where the path contains only
// ASCII letters, digits and dots. Each path is resolved against a value bag
// with tree.Traverse. Unresolved placeholders are left in the output
// unchanged, delimiters included, so rendering is safe to repeat later with
// a richer bag.
package mustache

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Za-z0-9.]+)\}\}`)

// Render substitutes every placeholder in tmpl with the matching value
// from values. Substituted values are not rendered again.
func Render(tmpl string, values map[string]any) string {
	if !HasTokens(tmpl) {
		return tmpl
	}
	return tokenPattern.ReplaceAllStringFunc(tmpl, func(token string) string {
		path := token[2 : len(token)-2]
		v := tree.Traverse(path, values)
		if v == nil {
			return token
		}
		return stringify(v)
	})
}

// firstKey is rendered before the other top-level keys of a tree.
const firstKey = "app"

// RenderTree renders every string leaf of root in place, using root itself
// as the value bag. Mappings and sequences are walked recursively.
//
// Leaves are visited in a fixed order: the app subtree, then the remaining keys
// sorted, then sequence items by index. A leaf sees the rendered value of
// every leaf visited before it and the raw value of the rest.
func RenderTree(root map[string]any) map[string]any {
	keys := sortedKeys(root)
	if i := slices.Index(keys, firstKey); i > 0 {
		keys = append(append([]string{firstKey}, keys[:i]...), keys[i+1:]...)
	}
	for _, k := range keys {
		root[k] = renderValue(root[k], root)
	}
	return root
}

// HasTokens reports whether s contains at least one placeholder.
func HasTokens(s string) bool {
	return strings.Contains(s, "{{") && tokenPattern.MatchString(s)
}

// TreeHasTokens reports whether any string leaf of root contains a placeholder.
func TreeHasTokens(root map[string]any) bool {
	for _, v := range root {
		if valueHasTokens(v) {
			return true
		}
	}
	return false
}

func renderMap(m, bag map[string]any) {
	for _, k := range sortedKeys(m) {
		m[k] = renderValue(m[k], bag)
	}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func renderValue(v any, bag map[string]any) any {
	switch val := v.(type) {
	case string:
		return Render(val, bag)
	case map[string]any:
		renderMap(val, bag)
		return val
	case []any:
		for i, item := range val {
			val[i] = renderValue(item, bag)
		}
		return val
	default:
		return v
	}
}

func valueHasTokens(v any) bool {
	switch val := v.(type) {
	case string:
		return HasTokens(val)
	case map[string]any:
		return TreeHasTokens(val)
	case []any:
		for _, item := range val {
			if valueHasTokens(item) {
				return true
			}
		}
	}
	return false
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
