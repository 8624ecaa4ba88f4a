package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/pebble/pkg/tree"
)

// ResolveEnv computes the effective value of an environment-structured
// mapping: the default block overridden by the block of env. A string block
// is an alias to a sibling key; aliases may chain but must not cycle.
func ResolveEnv(parsed tree.Tree, env string) (tree.Tree, error) {
	effective := tree.Tree{}
	if def, ok := tree.AsMap(parsed[DefaultKey]); ok {
		tree.Merge(effective, def)
	}
	if env == "" {
		return effective, nil
	}

	block, ok := parsed[env]
	if !ok {
		return effective, nil
	}

	seen := map[string]struct{}{env: {}}
	for {
		alias, isAlias := block.(string)
		if !isAlias {
			break
		}
		if _, loop := seen[alias]; loop {
			return nil, fmt.Errorf("%w at `%s`", ErrEnvCycle, alias)
		}
		seen[alias] = struct{}{}
		if block, ok = parsed[alias]; !ok {
			return nil, fmt.Errorf("%w: `%s`", ErrEnvNotFound, alias)
		}
	}

	if m, ok := tree.AsMap(block); ok {
		tree.Merge(effective, m)
	}
	return effective, nil
}

// Env holds the process-level settings read from environment variables.
type Env struct {
	Debug   *bool  `env:"PEBBLE_DEBUG"`
	Name    string `env:"PEBBLE_ENV"`
	Dir     string `env:"PEBBLE_CONFIG_DIR" envDefault:"configs"`
	Address string `env:"PEBBLE_ADDRESS" envDefault:":8080"`
}

// ParseEnv reads Env from the process environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, errors.Join(ErrEnvParse, err)
	}
	return e, nil
}

// ParseEnvFrom reads Env from the given variables instead of the process
// environment.
func ParseEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return e, errors.Join(ErrEnvParse, err)
	}
	return e, nil
}

// Options converts the settings into loader options.
func (e Env) Options() []Option {
	var opts []Option
	if e.Name != "" {
		opts = append(opts, WithEnv(e.Name))
	}
	if e.Debug != nil {
		opts = append(opts, WithOverride(BootstrapName+".debug", *e.Debug))
	}
	return opts
}

// Decode copies the subtree at path into dst using its yaml struct tags.
// A missing subtree leaves dst untouched.
func Decode(root tree.Tree, path string, dst any) error {
	v := tree.Traverse(path, root)
	if v == nil {
		return nil
	}
	raw, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	if err := yaml.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return nil
}

func toString(v any) string {
	return fmt.Sprint(v)
}
