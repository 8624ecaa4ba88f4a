// Package internal provides the core types and implementation for the pebble framework.
//
// This package is internal and should not be used directly. Import "github.com/dmitrymomot/pebble"
// instead, which re-exports the public API.
//
// # Core Types
//
//   - App: the application context built once by New. It owns the configuration tree,
//     the route table, the controller registry, the view renderer and the database helper.
//   - Context: request/response access, the request-scoped configuration view and helpers.
//   - Controller: a named group of actions, created by a ControllerFactory on first use.
//   - Dispatcher: resolves "Controller.method" names through the explicit registry.
//   - Route: one entry of the routes configuration section.
//
// # Routes
//
// Routes come from the "routes" configuration section, not from code:
//
//	home:
//	  url: /
//	  view: pages/home
//	article:
//	  url: /articles/{slug}
//	  action: Articles.show
//	contact:
//	  url: /contact
//	  method: post
//	  action: Pages.contact
//	notFound:
//	  view: errors/404
//	fatal:
//	  view: errors/500
//
// Each route has exactly one of action or view. The notFound and fatal routes are never
// registered as endpoints: unmatched requests re-enter the lifecycle with notFound, and
// errors returned by an action re-enter it with fatal. The triggering error is available
// from Context.Exception. In debug mode errors are written directly instead.
//
// # Request Scope
//
// The loaded configuration is shared by every request and never modified. The server
// subtree and dictionary.currentPage are computed per request and exposed through
// Context.Config, Context.Server and Context.CurrentPage.
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed directly to any function
// that expects a standard library context:
//
//	func (p *Pages) show(c pebble.Context) error {
//	    rows, err := p.db.FindBy(c, "articles", "slug", c.Param("slug"))
//	    if err != nil {
//	        return err
//	    }
//	    if len(rows) == 0 {
//	        return pebble.ErrNotFound("Article not found")
//	    }
//	    return c.View(http.StatusOK, "pages/article", pebble.Tree{"article": rows[0].Map()})
//	}
package internal
