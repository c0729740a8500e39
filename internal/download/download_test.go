package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCachesByURL(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer srv.Close()

	f := New(t.TempDir())
	url := srv.URL + "/textures/grass_light.png?v=2"

	path, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, ".png", filepath.Ext(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "grass_light-"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	again, err := f.Fetch(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, int32(1), hits.Load())

	other, err := f.Fetch(context.Background(), srv.URL+"/textures/grass_light.png?v=3")
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetchExtensionFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("x"))
	}))
	defer srv.Close()

	path, err := New(t.TempDir()).Fetch(context.Background(), srv.URL+"/net.JPEG")
	require.NoError(t, err)
	assert.Equal(t, ".jpg", filepath.Ext(path))
}

func TestFetchErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	f := New(dir)
	_, err := f.Fetch(context.Background(), srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = f.Fetch(context.Background(), srv.URL+"/page")
	assert.ErrorContains(t, err, "not an image")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed fetches leave nothing behind")
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(t.TempDir()).Fetch(ctx, srv.URL+"/slow.png")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, IsRemote("https://example.com/a.png"))
	assert.True(t, IsRemote(" HTTP://example.com/a.png"))
	assert.False(t, IsRemote("assets/textures/net.png"))
	assert.False(t, IsRemote("file:///tmp/a.png"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "texture", sanitizeFilename(""))
	assert.Equal(t, "texture", sanitizeFilename("///"))
	assert.Equal(t, "grass_light", sanitizeFilename("grass light"))
	assert.Len(t, sanitizeFilename(strings.Repeat("a", 200)), 64)
}
