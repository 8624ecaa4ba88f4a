// Package pebble is a small configuration-driven web framework.
//
// An application is described by a directory of YAML, JSON and text files.
// Each file becomes a key of one configuration tree: "routes.yml" is
// available as routes, "dictionary/en.yml" as dictionary.en. A file with a
// default block is resolved for the active environment, and an environment
// block may be the name of another environment to reuse its settings:
//
//	# database.yml
//	default:
//	  driver: mysql
//	  host: 127.0.0.1
//	development:
//	  dbname: notes_dev
//	staging: production
//
// # Routes
//
// The routes section maps route names to a URL and either a controller
// action or a view:
//
//	home:
//	  url: /
//	  view: pages/home
//	note:
//	  url: /notes/{slug}
//	  action: Notes.show
//	notFound:
//	  view: errors/404
//	fatal:
//	  view: errors/500
//
// notFound renders unmatched requests; fatal renders handler errors and
// panics. Both receive the error through Context.Exception.
//
// # Controllers
//
// Controllers are registered by name with a factory and created once, on
// first use:
//
//	app, err := pebble.New(
//	    pebble.WithConfigDir("configs"),
//	    pebble.WithController("Notes", controllers.NewNotes),
//	    pebble.WithRenderer(view.New(os.DirFS("views"))),
//	)
//
// # Request scope
//
// The configuration tree is loaded once. Each request sees it through
// Context.Config with two extra subtrees: server (scheme, host, base URL)
// and dictionary.currentPage, a copy of dictionary.pages.<route> that
// actions may extend with Context.InjectCurrentPage.
//
// # Database
//
// A database section creates a [github.com/dmitrymomot/pebble/pkg/db.Helper] that connects on first use,
// creates the database and the tables of database-schema when missing, and
// is closed on shutdown.
package pebble
