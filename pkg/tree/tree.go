package tree

import (
	"maps"
	"strings"
)

// Tree is a nested string-keyed mapping.
type Tree = map[string]any

// Traverse returns the value addressed by a dot-separated path.
// It returns nil if root is nil, if any segment is missing or if an
// intermediate value is not a mapping.
func Traverse(path string, root map[string]any) any {
	v, _ := Lookup(path, root)
	return v
}

// Lookup is like Traverse but also reports whether the final key exists.
func Lookup(path string, root map[string]any) (any, bool) {
	current := root
	for {
		if current == nil {
			return nil, false
		}
		head, rest, nested := strings.Cut(path, ".")
		v, ok := current[head]
		if !ok {
			return nil, false
		}
		if !nested {
			return v, true
		}
		next, isMap := AsMap(v)
		if !isMap {
			return nil, false
		}
		current, path = next, rest
	}
}

// Merge overrides target with source recursively and returns target.
// Mappings are merged key by key; any other source value replaces the
// target value verbatim. A missing or non-mapping target entry is replaced
// by a fresh mapping before a source mapping is merged into it.
func Merge(target, source map[string]any) map[string]any {
	if target == nil {
		target = make(map[string]any, len(source))
	}
	for key, value := range source {
		sub, isMap := AsMap(value)
		if !isMap {
			target[key] = value
			continue
		}
		dst, ok := AsMap(target[key])
		if !ok {
			dst = make(map[string]any, len(sub))
		}
		target[key] = Merge(dst, sub)
	}
	return target
}

// Clone returns a deep copy of src. Mappings and sequences are copied;
// scalars are shared.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return Clone(val)
	case map[any]any:
		m, _ := AsMap(val)
		return Clone(m)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

// Without returns a shallow copy of src with the given top-level keys removed.
func Without(src map[string]any, keys ...string) map[string]any {
	dst := maps.Clone(src)
	if dst == nil {
		dst = make(map[string]any)
	}
	for _, k := range keys {
		delete(dst, k)
	}
	return dst
}

// AsMap converts v to a string-keyed mapping when possible.
// Mappings with non-string keys (as produced by some YAML decoders) are
// converted by formatting their keys.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	default:
		return nil, false
	}
}
