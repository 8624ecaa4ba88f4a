package tree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

func TestTraverse(t *testing.T) {
	t.Parallel()

	root := tree.Tree{
		"a": tree.Tree{"b": tree.Tree{"c": 5}},
		"s": "scalar",
		"n": nil,
	}

	tests := []struct {
		name     string
		path     string
		root     tree.Tree
		expected any
	}{
		{name: "nested value", path: "a.b.c", root: root, expected: 5},
		{name: "missing leaf", path: "a.x", root: tree.Tree{"a": tree.Tree{"b": 1}}, expected: nil},
		{name: "nil root", path: "a", root: nil, expected: nil},
		{name: "direct key", path: "s", root: root, expected: "scalar"},
		{name: "descend through scalar", path: "s.x", root: root, expected: nil},
		{name: "intermediate mapping", path: "a.b", root: root, expected: tree.Tree{"c": 5}},
		{name: "empty path", path: "", root: root, expected: nil},
		{name: "trailing dot", path: "a.", root: root, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, tree.Traverse(tt.path, tt.root))
		})
	}

	t.Run("lookup distinguishes present nil", func(t *testing.T) {
		t.Parallel()

		v, ok := tree.Lookup("n", root)
		require.True(t, ok)
		require.Nil(t, v)

		_, ok = tree.Lookup("missing", root)
		require.False(t, ok)
	})

	t.Run("accepts yaml style mappings", func(t *testing.T) {
		t.Parallel()

		r := tree.Tree{"a": map[any]any{"b": "ok"}}
		require.Equal(t, "ok", tree.Traverse("a.b", r))
	})
}

func TestMerge(t *testing.T) {
	t.Parallel()

	t.Run("scalar overwrite and nested merge", func(t *testing.T) {
		t.Parallel()

		target := tree.Tree{"a": 1, "b": tree.Tree{"c": 2}}
		got := tree.Merge(target, tree.Tree{"b": tree.Tree{"c": 3, "d": 4}})

		require.Equal(t, tree.Tree{"a": 1, "b": tree.Tree{"c": 3, "d": 4}}, got)
		require.Equal(t, got, target, "merge mutates target in place")
	})

	t.Run("sequences are replaced whole", func(t *testing.T) {
		t.Parallel()

		target := tree.Tree{"list": []any{1, 2, 3}}
		tree.Merge(target, tree.Tree{"list": []any{9}})
		require.Equal(t, []any{9}, target["list"])
	})

	t.Run("creates missing mappings", func(t *testing.T) {
		t.Parallel()

		target := tree.Tree{}
		tree.Merge(target, tree.Tree{"x": tree.Tree{"y": tree.Tree{"z": true}}})
		require.Equal(t, true, tree.Traverse("x.y.z", target))
	})

	t.Run("replaces scalar with mapping", func(t *testing.T) {
		t.Parallel()

		target := tree.Tree{"x": "flat"}
		tree.Merge(target, tree.Tree{"x": tree.Tree{"y": 1}})
		require.Equal(t, tree.Tree{"y": 1}, target["x"])
	})

	t.Run("nil target", func(t *testing.T) {
		t.Parallel()

		got := tree.Merge(nil, tree.Tree{"a": 1})
		require.Equal(t, tree.Tree{"a": 1}, got)
	})

	t.Run("source mappings are not aliased", func(t *testing.T) {
		t.Parallel()

		source := tree.Tree{"b": tree.Tree{"c": 1}}
		target := tree.Merge(tree.Tree{}, source)
		target["b"].(tree.Tree)["c"] = 2
		require.Equal(t, 1, tree.Traverse("b.c", source))
	})
}

func TestClone(t *testing.T) {
	t.Parallel()

	src := tree.Tree{"a": tree.Tree{"b": []any{tree.Tree{"c": 1}}}}
	dst := tree.Clone(src)
	require.Equal(t, src, dst)

	dst["a"].(tree.Tree)["b"].([]any)[0].(tree.Tree)["c"] = 2
	require.Equal(t, 1, src["a"].(tree.Tree)["b"].([]any)[0].(tree.Tree)["c"])

	require.Nil(t, tree.Clone(nil))
}

func TestWithout(t *testing.T) {
	t.Parallel()

	src := tree.Tree{"app": 1, "database": tree.Tree{"password": "secret"}}
	got := tree.Without(src, "database")

	require.Equal(t, tree.Tree{"app": 1}, got)
	require.Contains(t, src, "database")
	require.NotNil(t, tree.Without(nil, "x"))
}
