package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/pebble/pkg/mustache"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

// Well-known keys of the configuration tree.
const (
	BootstrapName = "app"
	DefaultKey    = "default"
	EnvKey        = "env"
)

var bootstrapFiles = []string{BootstrapName + ".yml", BootstrapName + ".yaml", BootstrapName + ".json"}

type loader struct {
	raw            map[string]struct{}
	envs           map[string]struct{}
	env            string
	overrides      []override
	missingAsEmpty bool
}

func newLoader(opts ...Option) *loader {
	l := &loader{
		raw:  map[string]struct{}{"database-schema": {}},
		envs: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDir loads the configuration directory at dir.
func LoadDir(dir string, opts ...Option) (tree.Tree, error) {
	return Load(os.DirFS(dir), opts...)
}

// Load reads every supported file of fsys into one tree, resolves
// environments and renders placeholders across the result.
func Load(fsys fs.FS, opts ...Option) (tree.Tree, error) {
	l := newLoader(opts...)
	root := tree.Tree{}

	app, err := l.loadBootstrap(fsys)
	if err != nil {
		return nil, err
	}
	env := l.env
	if env == "" {
		env, _ = app[EnvKey].(string)
	}
	if env == "" {
		env = DefaultEnv
	}
	app[EnvKey] = env
	root[BootstrapName] = app
	l.envs[env] = struct{}{}

	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return loadError(ErrConfigNotFound, p, walkErr)
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || slices.Contains(bootstrapFiles, p) || !Supported(p) {
			return nil
		}

		key := strings.TrimSuffix(p, path.Ext(p))
		value, err := l.loadFile(fsys, p, key, env)
		if err != nil {
			return err
		}
		setPath(root, strings.Split(key, "/"), value)
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, o := range l.overrides {
		setPath(root, strings.Split(o.path, "."), o.value)
	}

	return mustache.RenderTree(root), nil
}

// loadBootstrap reads the app file. It is resolved against an environment
// only when it has a default block.
func (l *loader) loadBootstrap(fsys fs.FS) (tree.Tree, error) {
	for _, name := range bootstrapFiles {
		parsed, err := ParseFile(fsys, name)
		if errors.Is(err, ErrConfigNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		m, ok := tree.AsMap(parsed)
		if parsed == nil {
			m, ok = tree.Tree{}, true
		}
		if !ok {
			return nil, loadError(ErrConfigParse, name, errors.New("bootstrap file must be a mapping"))
		}
		if _, structured := m[DefaultKey]; !structured {
			return m, nil
		}
		for k := range m {
			if k != DefaultKey {
				l.envs[k] = struct{}{}
			}
		}

		env := l.env
		if env == "" {
			env, _ = tree.Traverse(DefaultKey+"."+EnvKey, m).(string)
		}
		app, err := ResolveEnv(m, env)
		if err != nil {
			return nil, loadError(ErrConfigLoad, name, err)
		}
		return app, nil
	}

	if l.missingAsEmpty {
		return tree.Tree{}, nil
	}
	return nil, loadError(ErrConfigNotFound, bootstrapFiles[0], nil)
}

func (l *loader) loadFile(fsys fs.FS, p, key, env string) (any, error) {
	parsed, err := ParseFile(fsys, p)
	if err != nil {
		return nil, err
	}
	if _, raw := l.raw[key]; raw {
		return parsed, nil
	}

	resolved, err := Resolve(parsed, env, slices.Collect(maps.Keys(l.envs))...)
	if err != nil {
		return nil, loadError(ErrConfigLoad, p, err)
	}
	return resolved, nil
}

// Resolve applies environment resolution to a parsed file that uses the
// default/environment layout. Any other value is returned unchanged.
// Known lists further environment names whose blocks mark a file as
// environment-structured.
func Resolve(parsed any, env string, known ...string) (any, error) {
	m, ok := tree.AsMap(parsed)
	if !ok || !isEnvStructured(m, env, known) {
		return parsed, nil
	}
	return ResolveEnv(m, env)
}

// Supported reports whether the file extension is one the loader reads.
func Supported(name string) bool {
	switch path.Ext(name) {
	case ".yml", ".yaml", ".json", ".txt":
		return true
	}
	return false
}

// ParseFile reads and decodes a single file of fsys.
// Text files are returned as strings, YAML and JSON files as decoded values
// with mappings normalized to map[string]any. An empty document decodes to nil.
func ParseFile(fsys fs.FS, name string) (any, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadError(ErrConfigNotFound, name, nil)
		}
		return nil, loadError(ErrConfigNotFound, name, err)
	}

	var v any
	switch path.Ext(name) {
	case ".txt":
		return string(data), nil
	case ".json":
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, loadError(ErrConfigParse, name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, loadError(ErrConfigParse, name, err)
		}
	}
	return normalize(v), nil
}

// isEnvStructured reports whether m uses the default/environment layout:
// it has a default block, a block for env or another known environment,
// or a top-level alias naming a sibling block.
func isEnvStructured(m tree.Tree, env string, known []string) bool {
	if _, ok := m[DefaultKey]; ok {
		return true
	}
	if _, ok := m[env]; ok {
		return true
	}
	for _, name := range known {
		if _, ok := m[name]; ok {
			return true
		}
	}
	for _, v := range m {
		alias, ok := v.(string)
		if !ok {
			continue
		}
		if _, isBlock := tree.AsMap(m[alias]); isBlock {
			return true
		}
	}
	return false
}

// setPath stores value under the given key segments, creating mappings
// along the way. Two mappings at the same key are merged.
func setPath(root tree.Tree, keys []string, value any) {
	current := root
	for _, k := range keys[:len(keys)-1] {
		next, ok := tree.AsMap(current[k])
		if !ok {
			next = tree.Tree{}
		}
		current[k] = next
		current = next
	}

	last := keys[len(keys)-1]
	if existing, ok := tree.AsMap(current[last]); ok {
		if m, isMap := tree.AsMap(value); isMap {
			current[last] = tree.Merge(existing, m)
			return
		}
	}
	current[last] = value
}

// normalize converts decoded YAML mappings with interface keys into
// string-keyed mappings, recursively.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = normalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			ks, ok := k.(string)
			if !ok {
				ks = toString(k)
			}
			out[ks] = normalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = normalize(item)
		}
		return val
	default:
		return v
	}
}
