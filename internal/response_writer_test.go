package internal_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pebble/internal"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("first status wins", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := internal.NewResponseWriter(w)
		require.False(t, rw.Written())

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusOK)

		require.True(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rw.Status())
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("write tracks size", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := internal.NewResponseWriter(w)

		n, err := rw.Write([]byte("hello world"))
		require.NoError(t, err)
		require.Equal(t, 11, n)
		require.Equal(t, int64(11), rw.Size())
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "hello world", w.Body.String())
	})

	t.Run("hooks run once in order before the first write", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := internal.NewResponseWriter(w)

		var order []int
		rw.OnBeforeWrite(func() { order = append(order, 1) })
		rw.OnBeforeWrite(func() {
			order = append(order, 2)
			rw.Header().Set("X-Hook", "ran")
		})

		_, _ = rw.Write([]byte("a"))
		_, _ = rw.Write([]byte("b"))
		rw.WriteHeader(http.StatusTeapot)

		require.Equal(t, []int{1, 2}, order)
		require.Equal(t, "ran", w.Header().Get("X-Hook"))
		require.Equal(t, "ab", w.Body.String())
	})

	t.Run("flush and unwrap reach the underlying writer", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		rw := internal.NewResponseWriter(w)

		rw.Flush()
		require.True(t, w.Flushed)
		require.Same(t, w, rw.Unwrap())
	})
}
