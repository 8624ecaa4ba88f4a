// Package view renders the views named by routes and actions.
//
// [Renderer] executes html/template files from an fs.FS. A view name maps to a
// file by adding the extension, so "pages/home" reads "pages/home.html". A file
// with the same name and a .yml, .yaml or .json extension holds the view's
// variables; it may use the default/environment layout of configuration files.
//
//	//go:embed views
//	var views embed.FS
//
//	sub, _ := fs.Sub(views, "views")
//	renderer := view.New(sub, view.WithPartials("layouts/*.html"))
//
// Parsed templates are cached; WithDebug(true) turns the cache off.
//
// # Template data
//
// Templates receive the view vars bag: app, router, config, vars, dictionary,
// request, exception, viewName, route and server, most with a one-letter alias
// (A, S, C, V, D, R, E, N).
//
//	<title>{{.V.title}}</title>
//	<a href="{{.server.base}}">{{lookup "nav.home"}}</a>
//
// # Functions
//
//   - asset FILE TYPE [VERSION]: assets.TYPE + FILE + "?" + app.version
//   - mustache TEMPLATE [VALUES]: replaces {{path}} placeholders, from the config by default
//   - slugify TEXT: URL-safe slug
//   - markdown TEXT: sanitized HTML
//   - sanitize HTML: user HTML reduced to basic formatting
//   - url ROUTE [KEY VALUE]...: path of a named route
//   - lookup PATH: dictionary value at PATH, or PATH itself
//
// [Templ] renders views implemented as templ components from a registry.
package view
