package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/dmitrymomot/pebble/pkg/mustache"
	"github.com/dmitrymomot/pebble/pkg/sanitizer"
	"github.com/dmitrymomot/pebble/pkg/slug"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Bag keys read by the template functions.
const (
	bagConfig     = "config"
	bagDictionary = "dictionary"
)

var markdownEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// stubFuncs declares the built-in function names for parsing. The bound
// implementations replace them on every render.
func stubFuncs() template.FuncMap {
	return boundFuncs(nil, nil)
}

// boundFuncs returns the built-in functions reading configuration and
// dictionary from bag.
func boundFuncs(bag map[string]any, urls URLFunc) template.FuncMap {
	cfg, _ := tree.AsMap(bag[bagConfig])
	dictionary, _ := tree.AsMap(bag[bagDictionary])

	return template.FuncMap{
		"asset": func(file, kind string, version ...bool) (string, error) {
			return asset(cfg, file, kind, version...)
		},
		"mustache": func(tmpl string, values ...map[string]any) string {
			if len(values) == 0 {
				return mustache.Render(tmpl, cfg)
			}
			return mustache.Render(tmpl, values[0])
		},
		"slugify": func(s string) string {
			return slug.Make(s)
		},
		"markdown": markdown,
		"sanitize": func(s string) template.HTML {
			return template.HTML(sanitizer.SanitizeHTML(s)) //nolint:gosec // sanitized
		},
		"url": func(name string, pairs ...any) (string, error) {
			if urls == nil {
				return "", ErrNoURLBuilder
			}
			params, err := urlParams(pairs)
			if err != nil {
				return "", err
			}
			return urls(name, params)
		},
		"lookup": func(path string) string {
			switch v := tree.Traverse(path, dictionary).(type) {
			case nil:
				return path
			case string:
				return v
			default:
				return fmt.Sprint(v)
			}
		},
	}
}

// asset joins the base configured under assets.<kind> with file and, unless
// disabled, the app.version cache-busting suffix.
func asset(cfg tree.Tree, file, kind string, version ...bool) (string, error) {
	base, ok := tree.Traverse("assets."+kind, cfg).(string)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAsset, kind)
	}
	out := base + file
	if len(version) > 0 && !version[0] {
		return out, nil
	}
	if v := tree.Traverse("app.version", cfg); v != nil {
		out += "?" + fmt.Sprint(v)
	}
	return out, nil
}

// markdown renders GitHub flavoured markdown and sanitizes the result.
func markdown(s string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(s), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeMarkdownHTML(buf.String())), nil //nolint:gosec // sanitized above
}

func urlParams(pairs []any) (map[string]string, error) {
	if len(pairs)%2 != 0 {
		return nil, ErrURLParams
	}
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: key %v", ErrURLParams, pairs[i])
		}
		params[key] = fmt.Sprint(pairs[i+1])
	}
	return params, nil
}
