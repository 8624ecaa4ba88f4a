// Package tree provides helpers for nested configuration trees.
//
// A tree is a map[string]any whose values are scalars, []any sequences or
// nested maps. Trees come out of YAML and JSON decoding and are addressed
// with dot-separated paths:
//
//	root := tree.Tree{"app": tree.Tree{"name": "pebble"}}
//	tree.Traverse("app.name", root) // "pebble"
//	tree.Traverse("app.missing", root) // nil
//
// Merge overrides one tree with another recursively, in place:
//
//	base := tree.Tree{"a": 1, "b": tree.Tree{"c": 2}}
//	tree.Merge(base, tree.Tree{"b": tree.Tree{"c": 3, "d": 4}})
//	// base == {a: 1, b: {c: 3, d: 4}}
//
// Only mappings are merged; sequences and scalars from the source replace
// the target value as a whole.
package tree
