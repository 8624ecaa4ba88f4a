package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pebble/internal"
	"github.com/dmitrymomot/pebble/pkg/tree"
)

type probeController struct {
	action internal.HandlerFunc
}

func (p probeController) Actions() map[string]internal.HandlerFunc {
	return map[string]internal.HandlerFunc{"run": p.action}
}

// newApp serves action at / behind mw. Errors reach a fatal route that
// writes "fatal:<status>:<exception>".
func newApp(t *testing.T, log *slog.Logger, action internal.HandlerFunc, mw ...internal.Middleware) *internal.App {
	t.Helper()

	fatal := func(c internal.Context) error {
		code := http.StatusInternalServerError
		if he := internal.AsHTTPError(c.Exception()); he != nil {
			code = he.StatusCode()
		}
		return c.String(code, "fatal:"+c.Exception().Error())
	}

	opts := []internal.Option{
		internal.WithConfig(tree.Tree{"routes": map[string]any{
			"home":  map[string]any{"url": "/", "action": "Probe.run"},
			"fatal": map[string]any{"action": "Errors.run"},
		}}),
		internal.WithController("Probe", func(*internal.App) internal.Controller { return probeController{action} }),
		internal.WithController("Errors", func(*internal.App) internal.Controller { return probeController{fatal} }),
		internal.WithMiddleware(mw...),
	}
	if log != nil {
		opts = append(opts, internal.WithLogger(log))
	}
	app, err := internal.New(opts...)
	require.NoError(t, err)
	return app
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func get(app http.Handler, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}
