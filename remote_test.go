package gitform

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/prefs", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("[core]\n\tdefault-branch = main\n"))
	})
	mux.HandleFunc("/large", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("#", maxRemoteSize+1)))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	ctx := t.Context()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		text, err := Fetch(ctx, srv.Client(), srv.URL+"/prefs")
		require.NoError(t, err)

		tree := NewParser(testCatalog(t)).ParseString(text)
		v, found := tree.Get("core", "", "defaultBranch")
		assert.True(t, found)
		assert.Equal(t, "main", v)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		_, err := Fetch(ctx, srv.Client(), srv.URL+"/missing")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		_, err := Fetch(ctx, srv.Client(), srv.URL+"/large")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		_, err := Fetch(ctx, nil, "://nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFetch)
	})

	t.Run("canceled", func(t *testing.T) {
		t.Parallel()

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := Fetch(cctx, srv.Client(), srv.URL+"/prefs")
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
