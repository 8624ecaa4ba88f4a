package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pebble/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text", input: "Hello World", want: "Hello World"},
		{name: "formatting", input: "<p>Hello <strong>World</strong></p>", want: "Hello World"},
		{name: "script", input: "Note<script>alert(1)</script>", want: "Note"},
		{name: "entities are escaped", input: "Tom & Jerry", want: "Tom &amp; Jerry"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "keeps paragraphs and emphasis", input: "<p><em>a</em> <b>b</b></p>", want: "<p><em>a</em> <b>b</b></p>"},
		{name: "keeps lists", input: "<ul><li>one</li></ul>", want: "<ul><li>one</li></ul>"},
		{name: "links get nofollow", input: `<a href="https://example.com">x</a>`, want: `<a href="https://example.com" rel="nofollow">x</a>`},
		{name: "drops headings", input: "<h1>Title</h1>", want: "Title"},
		{name: "drops javascript urls", input: `<a href="javascript:alert(1)">x</a>`, want: "x"},
		{name: "drops handlers", input: `<p onclick="alert(1)">x</p>`, want: "<p>x</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.SanitizeHTML(tt.input))
		})
	}
}

func TestSanitizeMarkdownHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "keeps headings with ids", input: `<h2 id="intro">Intro</h2>`, want: `<h2 id="intro">Intro</h2>`},
		{
			name:  "keeps code language class",
			input: `<pre><code class="language-go">x := 1</code></pre>`,
			want:  `<pre><code class="language-go">x := 1</code></pre>`,
		},
		{name: "keeps images", input: `<img src="/a.png" alt="a">`, want: `<img src="/a.png" alt="a">`},
		{name: "drops scripts", input: `<p>ok</p><script>alert(1)</script>`, want: `<p>ok</p>`},
		{name: "drops event handlers", input: `<p onclick="alert(1)">ok</p>`, want: `<p>ok</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.SanitizeMarkdownHTML(tt.input))
		})
	}
}

func TestXSSVectors(t *testing.T) {
	t.Parallel()

	vectors := []string{
		`<script>alert('XSS')</script>`,
		`<img src="x" onerror="alert('XSS')">`,
		`<svg onload="alert('XSS')">`,
		`<a href="javascript:alert('XSS')">click</a>`,
		`<iframe src="https://evil.example"></iframe>`,
		`<p style="background:url(javascript:alert(1))">x</p>`,
	}

	sanitizers := map[string]func(string) string{
		"strip":    sanitizer.StripHTML,
		"basic":    sanitizer.SanitizeHTML,
		"markdown": sanitizer.SanitizeMarkdownHTML,
	}

	for name, fn := range sanitizers {
		for _, v := range vectors {
			out := strings.ToLower(fn(v))
			assert.NotContains(t, out, "<script", name)
			assert.NotContains(t, out, "javascript:", name)
			assert.NotContains(t, out, "onerror", name)
			assert.NotContains(t, out, "onload", name)
			assert.NotContains(t, out, "<iframe", name)
		}
	}
}
