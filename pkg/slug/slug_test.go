package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pebble/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
		opts  []slug.Option
	}{
		{name: "words", input: "Hello World", want: "hello-world"},
		{name: "punctuation", input: "Hello, World!", want: "hello-world"},
		{name: "runs collapse", input: "Too---Many   Dashes", want: "too-many-dashes"},
		{name: "trimmed", input: "  -Trim Me-  ", want: "trim-me"},
		{name: "digits", input: "Price: $99.99", want: "price-99-99"},
		{name: "empty", input: "", want: ""},
		{name: "only symbols", input: "!@#$%^&*()", want: ""},
		{name: "diacritics", input: "Château façade élève", want: "chateau-facade-eleve"},
		{name: "polish", input: "Zażółć gęślą jaźń", want: "zazolc-gesla-jazn"},
		{name: "foldings", input: "Über Größe straße", want: "uber-grose-strase"},
		{name: "emoji dropped", input: "Hello 😀 World 🌍", want: "hello-world"},
		{name: "cyrillic dropped", input: "Hello Привет World", want: "hello-world"},
		{name: "url path", input: "https://example.com/a/b.txt", want: "https-example-com-a-b-txt"},
		{name: "keep case", input: "Hello World", opts: []slug.Option{slug.Lowercase(false)}, want: "Hello-World"},
		{name: "separator", input: "Multi Sep Test", opts: []slug.Option{slug.Separator("_")}, want: "multi_sep_test"},
		{name: "empty separator", input: "No Separator", opts: []slug.Option{slug.Separator("")}, want: "noseparator"},
		{name: "max length trims separator", input: "Cut off cleanly", opts: []slug.Option{slug.MaxLength(8)}, want: "cut-off"},
		{name: "max length counts runes", input: "Test™Case", opts: []slug.Option{slug.MaxLength(6)}, want: "test-c"},
		{name: "zero max length", input: "Not truncated", opts: []slug.Option{slug.MaxLength(0)}, want: "not-truncated"},
		{name: "strip chars", input: "Remove (these) [chars]", opts: []slug.Option{slug.StripChars("()[]")}, want: "remove-these-chars"},
		{
			name:  "longer replacement first",
			input: "a && b & c",
			opts:  []slug.Option{slug.CustomReplace(map[string]string{"&&": "and", "&": "amp"})},
			want:  "a-and-b-amp-c",
		},
		{
			name:  "options combined",
			input: "COMPLEX & Test @ 2024!!!",
			opts: []slug.Option{
				slug.Separator("_"),
				slug.Lowercase(false),
				slug.MaxLength(15),
				slug.CustomReplace(map[string]string{"&": "AND", "@": "AT"}),
			},
			want: "COMPLEX_AND_Tes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestMakeFoldsLetters(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]string{
		"àÁâÃäÅ": "aaaaaa",
		"èÉêË":   "eeee",
		"ìÍîÏ":   "iiii",
		"òÓôÕöØ": "oooooo",
		"ùÚûÜ":   "uuuu",
		"ñÇ":     "nc",
		"ßæŒłđı": "saoldi",
	} {
		assert.Equal(t, want, slug.Make(in), in)
	}
}

func BenchmarkMake(b *testing.B) {
	for b.Loop() {
		slug.Make("Château façade: an Über long title with 2024 numbers & symbols!")
	}
}
