package internal

import (
	"context"
	"maps"
	"net/http"
	"strings"

	"github.com/dmitrymomot/pebble/pkg/mustache"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Configuration keys computed per request.
const (
	serverKey      = "server"
	dictionaryKey  = "dictionary"
	pagesKey       = "pages"
	currentPageKey = "currentPage"
)

type scopeKey struct{}

// scope holds the state of one routed request. The loaded configuration is
// shared by every request; values derived from the request live here.
type scope struct {
	route      *Route
	exception  error
	server     tree.Tree
	dictionary tree.Tree
	config     tree.Tree
	redirect   string
}

func scopeFrom(ctx context.Context) *scope {
	s, _ := ctx.Value(scopeKey{}).(*scope)
	return s
}

// newScope computes the server subtree and the current page dictionary for
// route. A nil route yields a scope without a current page.
func (a *App) newScope(r *http.Request, route *Route, exception error) *scope {
	s := &scope{
		route:     route,
		exception: exception,
		server:    serverTree(r),
	}

	dictionary, _ := tree.AsMap(a.config[dictionaryKey])
	s.dictionary = maps.Clone(dictionary)
	if s.dictionary == nil {
		s.dictionary = tree.Tree{}
	}
	if route != nil {
		s.dictionary[currentPageKey] = currentPage(dictionary, route.Name, nil)
	}
	return s
}

// currentPage returns a fresh copy of dictionary.pages[routeName] merged
// with override.
func currentPage(dictionary tree.Tree, routeName string, override tree.Tree) tree.Tree {
	page, _ := tree.AsMap(tree.Traverse(pagesKey+"."+routeName, dictionary))
	page = tree.Clone(page)
	if page == nil {
		page = tree.Tree{}
	}
	return tree.Merge(page, override)
}

// requestConfig returns the configuration as seen by the request: the
// shared tree with the request's server and dictionary subtrees. When the
// loaded tree still holds placeholders, the view is a deep copy rendered
// against those subtrees.
func (a *App) requestConfig(s *scope) tree.Tree {
	if s.config != nil {
		return s.config
	}

	cfg := maps.Clone(a.config)
	if cfg == nil {
		cfg = tree.Tree{}
	}
	cfg[serverKey] = s.server
	cfg[dictionaryKey] = s.dictionary

	if a.pendingTokens {
		cfg = mustache.RenderTree(tree.Clone(cfg))
		s.server, _ = tree.AsMap(cfg[serverKey])
		s.dictionary, _ = tree.AsMap(cfg[dictionaryKey])
	}
	s.config = cfg
	return cfg
}

// injectCurrentPage merges override into the request's current page.
func (s *scope) injectCurrentPage(override tree.Tree) {
	page, ok := tree.AsMap(s.dictionary[currentPageKey])
	if !ok {
		page = tree.Tree{}
		s.dictionary[currentPageKey] = page
	}
	tree.Merge(page, override)
}

// serverTree describes how the request reached the server.
func serverTree(r *http.Request) tree.Tree {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	host := scheme + "://" + r.Host
	return tree.Tree{
		"scheme":   scheme,
		"hostName": r.Host,
		"host":     host,
		"base":     host + "/",
	}
}
