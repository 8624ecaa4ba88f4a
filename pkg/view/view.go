package view

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

const defaultExtension = ".html"

// URLFunc builds the path of a named route.
type URLFunc func(name string, params map[string]string) (string, error)

// Option configures a Renderer.
type Option func(*Renderer)

// WithExtension sets the template file extension. Defaults to ".html".
func WithExtension(ext string) Option {
	return func(r *Renderer) {
		if ext != "" {
			r.ext = ext
		}
	}
}

// WithPartials adds glob patterns of templates parsed with every view,
// such as layouts. They are parsed before the view, so blocks defined by
// the view win.
func WithPartials(patterns ...string) Option {
	return func(r *Renderer) {
		r.partials = append(r.partials, patterns...)
	}
}

// WithFuncs adds template functions. They may replace the built-in ones.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		for name, fn := range funcs {
			r.funcs[name] = fn
		}
	}
}

// WithDebug disables the template and vars caches so edits show up on the
// next request.
func WithDebug(debug bool) Option {
	return func(r *Renderer) {
		r.debug = debug
	}
}

// Renderer renders html/template views from a file system. A view name
// such as "pages/home" maps to "pages/home.html"; "pages/home.yml" beside
// it holds the view's variables.
type Renderer struct {
	fsys     fs.FS
	funcs    template.FuncMap
	urls     URLFunc
	cache    map[string]*template.Template
	vars     map[string]tree.Tree
	ext      string
	partials []string
	group    singleflight.Group
	mu       sync.RWMutex
	debug    bool
}

// New returns a Renderer reading templates from fsys.
func New(fsys fs.FS, opts ...Option) *Renderer {
	r := &Renderer{
		fsys:  fsys,
		funcs: template.FuncMap{},
		cache: make(map[string]*template.Template),
		vars:  make(map[string]tree.Tree),
		ext:   defaultExtension,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BindURLs sets the route URL builder used by the url function.
func (r *Renderer) BindURLs(fn func(name string, params map[string]string) (string, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = fn
}

// Render executes the view name with bag as its data.
func (r *Renderer) Render(ctx context.Context, w io.Writer, name string, bag map[string]any) error {
	t, err := r.template(name)
	if err != nil {
		return err
	}

	clone, err := t.Clone()
	if err != nil {
		return err
	}
	r.mu.RLock()
	urls := r.urls
	r.mu.RUnlock()

	clone.Funcs(boundFuncs(bag, urls)).Funcs(r.funcs)
	return clone.Execute(w, bag)
}

// ViewVars returns the variables file of a view resolved for env, or nil
// when the view has none.
func (r *Renderer) ViewVars(name, env string) (map[string]any, error) {
	key := env + "\x00" + name
	if !r.debug {
		r.mu.RLock()
		vars, ok := r.vars[key]
		r.mu.RUnlock()
		if ok {
			return tree.Clone(vars), nil
		}
	}

	v, err, _ := r.group.Do("vars:"+key, func() (any, error) {
		vars, err := r.loadVars(name, env)
		if err != nil {
			return nil, err
		}
		if !r.debug {
			r.mu.Lock()
			r.vars[key] = vars
			r.mu.Unlock()
		}
		return vars, nil
	})
	if err != nil {
		return nil, err
	}
	return tree.Clone(v.(tree.Tree)), nil
}

func (r *Renderer) loadVars(name, env string) (tree.Tree, error) {
	for _, ext := range []string{".yml", ".yaml", ".json"} {
		file := name + ext
		if _, err := fs.Stat(r.fsys, file); err != nil {
			continue
		}
		parsed, err := config.ParseFile(r.fsys, file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrViewVars, err)
		}
		resolved, err := config.Resolve(parsed, env)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrViewVars, file, err)
		}
		if resolved == nil {
			return nil, nil
		}
		vars, ok := tree.AsMap(resolved)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a mapping", ErrViewVars, file)
		}
		return vars, nil
	}
	return nil, nil
}

// template returns the parsed view, from the cache unless in debug mode.
// Concurrent misses for the same view parse it once.
func (r *Renderer) template(name string) (*template.Template, error) {
	if !r.debug {
		r.mu.RLock()
		t, ok := r.cache[name]
		r.mu.RUnlock()
		if ok {
			return t, nil
		}
	}

	v, err, _ := r.group.Do("tmpl:"+name, func() (any, error) {
		t, err := r.parse(name)
		if err != nil {
			return nil, err
		}
		if !r.debug {
			r.mu.Lock()
			r.cache[name] = t
			r.mu.Unlock()
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

func (r *Renderer) parse(name string) (*template.Template, error) {
	file := path.Clean(name) + r.ext
	content, err := fs.ReadFile(r.fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrViewNotFound, file)
		}
		return nil, err
	}

	t := template.New(name).Funcs(stubFuncs()).Funcs(r.funcs)
	for _, pattern := range r.partials {
		matches, err := fs.Glob(r.fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrViewParse, pattern, err)
		}
		if len(matches) == 0 {
			continue
		}
		if _, err := t.ParseFS(r.fsys, matches...); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrViewParse, err)
		}
	}
	if _, err := t.Parse(string(content)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrViewParse, err)
	}
	return t, nil
}
