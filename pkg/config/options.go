package config

// DefaultEnv is used when neither WithEnv nor app.env name an environment.
const DefaultEnv = "production"

// Option configures the loader.
type Option func(*loader)

type override struct {
	value any
	path  string
}

// WithEnv selects the active environment. It takes precedence over app.env.
func WithEnv(name string) Option {
	return func(l *loader) {
		if name != "" {
			l.env = name
		}
	}
}

// WithMissingAsEmpty treats a missing bootstrap file as an empty tree
// instead of failing the load.
func WithMissingAsEmpty() Option {
	return func(l *loader) {
		l.missingAsEmpty = true
	}
}

// WithRawFiles lists files, by path without extension, that are stored
// exactly as parsed, skipping environment resolution.
// Defaults to "database-schema".
func WithRawFiles(names ...string) Option {
	return func(l *loader) {
		for _, n := range names {
			l.raw[n] = struct{}{}
		}
	}
}

// WithOverride sets the value at a dot path after environment resolution
// and before placeholders are rendered.
//
// Example:
//
//	config.Load(fsys, config.WithOverride("app.debug", true))
func WithOverride(path string, value any) Option {
	return func(l *loader) {
		if path != "" {
			l.overrides = append(l.overrides, override{path: path, value: value})
		}
	}
}
