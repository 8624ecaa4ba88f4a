package mustache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pebble/pkg/mustache"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tmpl     string
		values   tree.Tree
		expected string
	}{
		{
			name:     "unresolved token is kept",
			tmpl:     "{{missing}}",
			values:   tree.Tree{},
			expected: "{{missing}}",
		},
		{
			name:     "nested path",
			tmpl:     "Hi {{user.name}}",
			values:   tree.Tree{"user": tree.Tree{"name": "Ada"}},
			expected: "Hi Ada",
		},
		{
			name:     "multiple tokens",
			tmpl:     "{{a}}-{{b}}-{{c}}",
			values:   tree.Tree{"a": 1, "b": true, "c": 2.5},
			expected: "1-true-2.5",
		},
		{
			name:     "invalid characters are not tokens",
			tmpl:     "{{ a }} {{a-b}}",
			values:   tree.Tree{"a": "x"},
			expected: "{{ a }} {{a-b}}",
		},
		{
			name:     "substituted values are not expanded again",
			tmpl:     "{{a}}",
			values:   tree.Tree{"a": "{{b}}", "b": "nope"},
			expected: "{{b}}",
		},
		{
			name:     "nil bag",
			tmpl:     "{{a}}",
			values:   nil,
			expected: "{{a}}",
		},
		{
			name:     "plain text",
			tmpl:     "no tokens here",
			values:   tree.Tree{"a": 1},
			expected: "no tokens here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, mustache.Render(tt.tmpl, tt.values))
		})
	}
}

func TestRenderTree(t *testing.T) {
	t.Parallel()

	root := tree.Tree{
		"app": tree.Tree{"name": "pebble", "title": "{{app.name}} site"},
		"pages": tree.Tree{
			"home": tree.Tree{
				"heading": "Welcome to {{app.name}}",
				"links":   []any{"{{app.name}}/a", 42, tree.Tree{"href": "{{server.base}}x"}},
			},
		},
	}

	mustache.RenderTree(root)

	require.Equal(t, "Welcome to pebble", tree.Traverse("pages.home.heading", root))
	links := tree.Traverse("pages.home.links", root).([]any)
	require.Equal(t, "pebble/a", links[0])
	require.Equal(t, 42, links[1])
	require.Equal(t, tree.Tree{"href": "{{server.base}}x"}, links[2])
	require.True(t, mustache.TreeHasTokens(root))

	root["server"] = tree.Tree{"base": "http://localhost/"}
	mustache.RenderTree(root)
	require.False(t, mustache.TreeHasTokens(root))
}

func TestHasTokens(t *testing.T) {
	t.Parallel()

	require.True(t, mustache.HasTokens("a {{b.c}}"))
	require.False(t, mustache.HasTokens("a {{ b }}"))
	require.False(t, mustache.HasTokens("plain"))
}

func TestRenderTree_Order(t *testing.T) {
	t.Parallel()

	for range 50 {
		root := tree.Tree{
			"app":    tree.Tree{"a": "{{beta.v}}", "b": "{{app.a}}"},
			"alpha":  tree.Tree{"v": "{{beta.v}}"},
			"beta":   tree.Tree{"v": "{{gamma.v}}"},
			"gamma":  tree.Tree{"v": "end"},
			"series": []any{"{{app.b}}", "{{gamma.v}}"},
		}

		mustache.RenderTree(root)

		require.Equal(t, "{{gamma.v}}", tree.Traverse("app.a", root))
		require.Equal(t, "{{gamma.v}}", tree.Traverse("app.b", root))
		require.Equal(t, "{{gamma.v}}", tree.Traverse("alpha.v", root))
		require.Equal(t, "end", tree.Traverse("beta.v", root))
		require.Equal(t, []any{"{{gamma.v}}", "end"}, root["series"])
	}
}
