package slug

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures Make.
type Option func(*options)

type options struct {
	replace   map[string]string
	strip     string
	separator string
	maxLength int
	lowercase bool
}

// Separator sets the string placed between words. Defaults to "-".
func Separator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// Lowercase controls case conversion. Defaults to true.
func Lowercase(lower bool) Option {
	return func(o *options) {
		o.lowercase = lower
	}
}

// MaxLength limits the slug to n runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.maxLength = n
		}
	}
}

// StripChars removes the given characters before the slug is built.
func StripChars(chars string) Option {
	return func(o *options) {
		o.strip += chars
	}
}

// CustomReplace applies string replacements before the slug is built.
// Longer keys are replaced first.
func CustomReplace(replacements map[string]string) Option {
	return func(o *options) {
		if o.replace == nil {
			o.replace = make(map[string]string, len(replacements))
		}
		for k, v := range replacements {
			o.replace[k] = v
		}
	}
}

// Letters that do not decompose into a base letter and a combining mark.
var foldings = map[rune]string{
	'ß': "s",
	'æ': "a", 'Æ': "A",
	'œ': "o", 'Œ': "O",
	'ø': "o", 'Ø': "O",
	'ł': "l", 'Ł': "L",
	'đ': "d", 'Đ': "D",
	'ı': "i",
}

// Make converts s into a URL-safe slug: diacritics are folded to ASCII,
// runs of any other character become a single separator, and leading and
// trailing separators are dropped.
func Make(s string, opts ...Option) string {
	o := options{separator: "-", lowercase: true}
	for _, opt := range opts {
		opt(&o)
	}

	s = applyReplacements(s, o.replace)
	if o.strip != "" {
		s = strings.Map(func(r rune) rune {
			if strings.ContainsRune(o.strip, r) {
				return -1
			}
			return r
		}, s)
	}
	s = fold(s)

	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for _, r := range s {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			pending = b.Len() > 0
			continue
		}
		if pending {
			b.WriteString(o.separator)
			pending = false
		}
		if o.lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}

	return truncate(b.String(), o.maxLength, o.separator)
}

func applyReplacements(s string, replace map[string]string) string {
	if len(replace) == 0 {
		return s
	}
	keys := make([]string, 0, len(replace))
	for k := range replace {
		if k != "" {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(a, b string) int {
		if n := len(b) - len(a); n != 0 {
			return n
		}
		return strings.Compare(a, b)
	})
	for _, k := range keys {
		s = strings.ReplaceAll(s, k, replace[k])
	}
	return s
}

// fold strips combining marks after canonical decomposition.
func fold(s string) string {
	var b strings.Builder
	for _, r := range s {
		if f, ok := foldings[r]; ok {
			b.WriteString(f)
			continue
		}
		b.WriteRune(r)
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, b.String())
	if err != nil {
		return b.String()
	}
	return out
}

func truncate(s string, maxLength int, sep string) string {
	if maxLength == 0 || utf8.RuneCountInString(s) <= maxLength {
		return s
	}
	s = string([]rune(s)[:maxLength])
	if sep != "" {
		for strings.HasSuffix(s, sep) {
			s = strings.TrimSuffix(s, sep)
		}
	}
	return s
}
