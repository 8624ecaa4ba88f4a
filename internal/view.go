package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

// ViewRenderer renders a named view with the view vars bag.
type ViewRenderer interface {
	Render(ctx context.Context, w io.Writer, name string, bag map[string]any) error
}

// ViewVarsLoader is implemented by renderers that keep per-view variables
// next to their templates.
type ViewVarsLoader interface {
	ViewVars(name, env string) (map[string]any, error)
}

// URLBinder is implemented by renderers exposing reverse routing to
// templates. New binds App.URL once the route table is parsed.
type URLBinder interface {
	BindURLs(fn func(name string, params map[string]string) (string, error))
}

// Keys of the view vars bag. Every key also has a one-letter alias.
const (
	BagApp        = "app"
	BagRouter     = "router"
	BagConfig     = "config"
	BagVars       = "vars"
	BagDictionary = "dictionary"
	BagRequest    = "request"
	BagException  = "exception"
	BagViewName   = "viewName"
	BagRoute      = "route"
	BagServer     = "server"
)

// URLHelper is the router handle exposed to views. It only builds paths to
// named routes.
type URLHelper struct {
	app *App
}

// URL returns the path of the named route. Params are given as key/value
// pairs, for example {{ .router.URL "article" "slug" .vars.slug }}.
func (u URLHelper) URL(name string, pairs ...string) (string, error) {
	if len(pairs)%2 != 0 {
		return "", fmt.Errorf("%w: odd number of params for %s", ErrRouteParam, name)
	}
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		params[pairs[i]] = pairs[i+1]
	}
	return u.app.URL(name, params)
}

var bagAliases = map[string]string{
	BagApp:        "A",
	BagRouter:     "S",
	BagConfig:     "C",
	BagVars:       "V",
	BagDictionary: "D",
	BagRequest:    "R",
	BagException:  "E",
	BagViewName:   "N",
}

// renderView renders a view into a buffer and writes it with code, so a
// failing template never leaves a partial response.
func (a *App) renderView(c *requestContext, code int, name string, vars tree.Tree) error {
	if a.renderer == nil {
		return fmt.Errorf("%w: %s", ErrNoRenderer, name)
	}

	merged := tree.Tree{}
	if loader, ok := a.renderer.(ViewVarsLoader); ok {
		fileVars, err := loader.ViewVars(name, a.Env())
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrViewRender, name, err)
		}
		tree.Merge(merged, fileVars)
	}
	tree.Merge(merged, vars)

	if hook, ok := a.appController.(BeforeViewHook); ok {
		if err := hook.BeforeView(c, name, merged); err != nil {
			return err
		}
		if s := c.scope(); s.redirect != "" {
			return c.Redirect(http.StatusFound, s.redirect)
		}
	}

	var buf bytes.Buffer
	if err := a.renderer.Render(c.Context(), &buf, name, a.viewBag(c, name, merged)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrViewRender, name, err)
	}

	c.SetHeader("Content-Type", "text/html; charset=utf-8")
	c.response.WriteHeader(code)
	_, err := buf.WriteTo(c.response)
	return err
}

// viewBag builds the fixed set of values exposed to templates.
// The database section never reaches templates.
func (a *App) viewBag(c *requestContext, name string, vars tree.Tree) tree.Tree {
	cfg := c.Config()
	var exception any
	if err := c.Exception(); err != nil {
		exception = err
	}

	bag := tree.Tree{
		BagApp:        a,
		BagRouter:     URLHelper{app: a},
		BagConfig:     tree.Without(cfg, databaseKey),
		BagVars:       vars,
		BagDictionary: cfg[dictionaryKey],
		BagRequest:    c.Request(),
		BagException:  exception,
		BagViewName:   name,
		BagRoute:      c.Route(),
		BagServer:     cfg[serverKey],
	}
	for key, alias := range bagAliases {
		bag[alias] = bag[key]
	}
	return bag
}
