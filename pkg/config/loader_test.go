package config_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pebble/pkg/config"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

func file(s string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(s)}
}

const envCloneFile = `
default:
  x: 1
staging:
  x: 2
production: staging
`

func TestLoad_EnvClone(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"app.yml":  file("name: demo\n"),
		"site.yml": file(envCloneFile),
	}

	for _, env := range []string{"production", "staging"} {
		t.Run(env, func(t *testing.T) {
			t.Parallel()

			cfg, err := config.Load(fsys, config.WithEnv(env))
			require.NoError(t, err)
			require.Equal(t, tree.Tree{"x": 2}, cfg["site"])
			require.Equal(t, env, tree.Traverse("app.env", cfg))
		})
	}

	t.Run("unknown env falls back to default", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(fsys, config.WithEnv("dev"))
		require.NoError(t, err)
		require.Equal(t, tree.Tree{"x": 1}, cfg["site"])
	})

	t.Run("missing alias target fails", func(t *testing.T) {
		t.Parallel()

		bad := fstest.MapFS{
			"app.yml":  file("name: demo\n"),
			"site.yml": file("default:\n  x: 1\nproduction: nope\n"),
		}
		_, err := config.Load(bad, config.WithEnv("production"))
		require.ErrorIs(t, err, config.ErrConfigLoad)
		require.ErrorIs(t, err, config.ErrEnvNotFound)
		require.Contains(t, err.Error(), "site.yml")
		require.Contains(t, err.Error(), "nope")
	})

	t.Run("alias chains resolve and cycles fail", func(t *testing.T) {
		t.Parallel()

		chained := fstest.MapFS{
			"app.yml":  file("name: demo\n"),
			"site.yml": file("default:\n  x: 1\nqa:\n  x: 3\nstaging: qa\nproduction: staging\n"),
			"loop.yml": file("default: {}\nproduction: staging\nstaging: production\n"),
		}
		_, err := config.Load(chained, config.WithEnv("production"))
		require.ErrorIs(t, err, config.ErrEnvCycle)

		delete(chained, "loop.yml")
		cfg, err := config.Load(chained, config.WithEnv("production"))
		require.NoError(t, err)
		require.Equal(t, 3, tree.Traverse("site.x", cfg))
	})
}

func TestLoad_Bootstrap(t *testing.T) {
	t.Parallel()

	t.Run("structured bootstrap resolves with its own default env", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"app.yml": file("default:\n  env: prod\n  debug: false\nprod:\n  version: \"1.2\"\n"),
		}
		cfg, err := config.Load(fsys)
		require.NoError(t, err)
		require.Equal(t, "prod", tree.Traverse("app.env", cfg))
		require.Equal(t, false, tree.Traverse("app.debug", cfg))
		require.Equal(t, "1.2", tree.Traverse("app.version", cfg))
	})

	t.Run("flat bootstrap is stored unresolved", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"app.yml": file("env: staging\ndebug: true\n"),
			"db.yml":  file("default:\n  host: localhost\nstaging:\n  host: staging-db\n"),
		}
		cfg, err := config.Load(fsys)
		require.NoError(t, err)
		require.Equal(t, true, tree.Traverse("app.debug", cfg))
		require.Equal(t, "staging-db", tree.Traverse("db.host", cfg))
	})

	t.Run("missing bootstrap fails", func(t *testing.T) {
		t.Parallel()

		_, err := config.Load(fstest.MapFS{"routes.yml": file("home: {url: /}\n")})
		require.ErrorIs(t, err, config.ErrConfigNotFound)
		require.ErrorIs(t, err, config.ErrConfigLoad)
		require.Contains(t, err.Error(), "app.yml")
	})

	t.Run("missing bootstrap as empty", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.Load(fstest.MapFS{}, config.WithMissingAsEmpty())
		require.NoError(t, err)
		require.Equal(t, config.DefaultEnv, tree.Traverse("app.env", cfg))
	})

	t.Run("env option wins over app.env", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"app.yml": file("env: staging\n")}
		cfg, err := config.Load(fsys, config.WithEnv("local"))
		require.NoError(t, err)
		require.Equal(t, "local", tree.Traverse("app.env", cfg))
	})
}

func TestLoad_Files(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"app.yml":                     file("name: pebble\n"),
		"routes.yml":                  file("home:\n  url: /\n  view: pages/home\n"),
		"dictionary/pages.json":       file(`{"default": {"home": {"title": "Welcome to {{app.name}}"}}}`),
		"dictionary/legal/terms.txt":  file("Terms of {{app.name}}"),
		"database-schema.yml":         file("tables:\n  - CREATE TABLE users (id INT)\n"),
		"notes.md":                    file("ignored"),
		".hidden/secret.yml":          file("x: 1\n"),
		"servers/default-server.yaml": file("default:\n  base: \"{{server.base}}\"\n"),
	}

	cfg, err := config.Load(fsys)
	require.NoError(t, err)

	require.Equal(t, "pages/home", tree.Traverse("routes.home.view", cfg))
	require.Equal(t, "Welcome to pebble", tree.Traverse("dictionary.pages.home.title", cfg))
	require.Equal(t, "Terms of pebble", tree.Traverse("dictionary.legal.terms", cfg))
	require.Equal(t, []any{"CREATE TABLE users (id INT)"}, tree.Traverse("database-schema.tables", cfg))
	require.Equal(t, "{{server.base}}", tree.Traverse("servers.default-server.base", cfg))
	require.NotContains(t, cfg, "notes")
	require.NotContains(t, cfg, ".hidden")
}

func TestLoad_ParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		file string
		data string
	}{
		{name: "yaml", file: "broken.yml", data: "a: [1, 2\n"},
		{name: "json", file: "broken.json", data: `{"a": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := fstest.MapFS{
				"app.yml": file("name: demo\n"),
				tt.file:   file(tt.data),
			}
			_, err := config.Load(fsys)
			require.ErrorIs(t, err, config.ErrConfigParse)
			require.ErrorIs(t, err, config.ErrConfigLoad)
			require.Contains(t, err.Error(), tt.file)
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"app.yml":  file("debug: false\nname: demo\n"),
		"site.yml": file("title: \"{{app.name}} ({{app.debug}})\"\n"),
	}

	cfg, err := config.Load(fsys, config.WithOverride("app.debug", true))
	require.NoError(t, err)
	require.Equal(t, true, tree.Traverse("app.debug", cfg))
	require.Equal(t, "demo (true)", tree.Traverse("site.title", cfg))
}

func TestResolveEnv(t *testing.T) {
	t.Parallel()

	parsed := tree.Tree{
		"default":    tree.Tree{"db": tree.Tree{"host": "localhost", "port": 3306}},
		"production": tree.Tree{"db": tree.Tree{"host": "db.internal"}},
	}

	got, err := config.ResolveEnv(parsed, "production")
	require.NoError(t, err)
	require.Equal(t, tree.Tree{"db": tree.Tree{"host": "db.internal", "port": 3306}}, got)

	// The default block is copied, not shared.
	got["db"].(tree.Tree)["port"] = 1
	require.Equal(t, 3306, tree.Traverse("default.db.port", parsed))
}

func TestParseEnvFrom(t *testing.T) {
	t.Parallel()

	e, err := config.ParseEnvFrom(map[string]string{
		"PEBBLE_ENV":   "staging",
		"PEBBLE_DEBUG": "true",
	})
	require.NoError(t, err)
	require.Equal(t, "staging", e.Name)
	require.Equal(t, "configs", e.Dir)
	require.Equal(t, ":8080", e.Address)
	require.NotNil(t, e.Debug)
	require.True(t, *e.Debug)

	cfg, err := config.Load(fstest.MapFS{"app.yml": file("debug: false\n")}, e.Options()...)
	require.NoError(t, err)
	require.Equal(t, true, tree.Traverse("app.debug", cfg))
	require.Equal(t, "staging", tree.Traverse("app.env", cfg))

	_, err = config.ParseEnvFrom(map[string]string{"PEBBLE_DEBUG": "maybe"})
	require.ErrorIs(t, err, config.ErrEnvParse)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	var dst struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	}
	root := tree.Tree{"database": tree.Tree{"host": "localhost", "port": 3306}}

	require.NoError(t, config.Decode(root, "database", &dst))
	require.Equal(t, "localhost", dst.Host)
	require.Equal(t, 3306, dst.Port)

	require.NoError(t, config.Decode(root, "missing", &dst))
	require.Equal(t, "localhost", dst.Host)
}

func TestLoad_TemplatingOrder(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"app.yml":   file("site: pebble\ntitle: \"{{about.name}}\"\n"),
		"about.yml": file("name: \"{{app.site}}\"\n"),
		"a.yml":     file("x: \"{{b.y}}\"\n"),
		"b.yml":     file("y: \"{{c.z}}\"\n"),
		"c.yml":     file("z: done\n"),
	}

	for range 50 {
		cfg, err := config.Load(fsys)
		require.NoError(t, err)

		require.Equal(t, "{{app.site}}", tree.Traverse("app.title", cfg))
		require.Equal(t, "pebble", tree.Traverse("about.name", cfg))
		require.Equal(t, "{{c.z}}", tree.Traverse("a.x", cfg))
		require.Equal(t, "done", tree.Traverse("b.y", cfg))
	}
}

func TestLoad_EnvBlocksWithoutActiveEnv(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"app.yml":      file("default:\n  env: production\nstaging: {}\ndevelopment:\n  debug: true\n"),
		"database.yml": file("staging:\n  password: s3cret\ndevelopment:\n  password: dev\n"),
		"search.yml":   file("preview:\n  host: search.preview\nqa: preview\n"),
		"assets.yml":   file("css: /static/css/\nfonts: css\n"),
	}

	cfg, err := config.Load(fsys)
	require.NoError(t, err)
	require.Equal(t, "production", tree.Traverse("app.env", cfg))
	require.Equal(t, tree.Tree{}, cfg["database"])
	require.Equal(t, tree.Tree{}, cfg["search"])
	require.Equal(t, tree.Tree{"css": "/static/css/", "fonts": "css"}, cfg["assets"])

	cfg, err = config.Load(fsys, config.WithEnv("development"))
	require.NoError(t, err)
	require.Equal(t, "dev", tree.Traverse("database.password", cfg))

	cfg, err = config.Load(fsys, config.WithEnv("qa"))
	require.NoError(t, err)
	require.Equal(t, "search.preview", tree.Traverse("search.host", cfg))
}
