package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dsjohal14/sitesearch/internal/scope/search"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleIndex = `[
  {"title": "Getting Started", "type": "page", "url": "/start"},
  {"title": "API Reference", "content": "REST endpoints", "type": "doc", "url": "/api"}
]`

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"array", sampleIndex, 2, false},
		{"empty array", `[]`, 0, false},
		{"null", `null`, 0, false},
		{"skips entries without url", `[{"title":"a","type":"page"},{"title":"b","type":"page","url":"/b"}]`, 1, false},
		{"skips entries without title", `[{"type":"page","url":"/a"}]`, 0, false},
		{"object envelope", `{"entries":[]}`, 0, true},
		{"malformed", `[{"title":`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := Decode(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, idx)
			assert.Len(t, idx, tt.want)
		})
	}
}

func TestDecodePreservesOrderAndContent(t *testing.T) {
	idx, err := Decode(strings.NewReader(sampleIndex))
	require.NoError(t, err)

	assert.Equal(t, search.Index{
		{Title: "Getting Started", Type: "page", URL: "/start"},
		{Title: "API Reference", Content: "REST endpoints", Type: "doc", URL: "/api"},
	}, idx)
}

func TestDecodeTooLarge(t *testing.T) {
	body := strings.NewReader("[" + strings.Repeat(" ", MaxIndexBytes) + "]")

	_, err := Decode(body)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestLoaderEmbedded(t *testing.T) {
	l := NewLoader(zerolog.Nop())

	idx := l.Load(context.Background(), Embedded(search.Index{
		{Title: "One", Type: "page", URL: "/one"},
		{Title: "", Type: "page", URL: "/blank"},
	}))

	require.Len(t, idx, 1)
	assert.Equal(t, "/one", idx[0].URL)
}

func TestLoaderRemote(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleIndex))
	}))
	defer srv.Close()

	base, err := url.Parse(srv.URL + "/docs/guide/page.html")
	require.NoError(t, err)

	l := NewLoader(zerolog.Nop())
	l.BaseURL = base

	idx, err := l.Fetch(context.Background(), RemoteFor("../../"))
	require.NoError(t, err)
	assert.Len(t, idx, 2)
	assert.Equal(t, "/"+DefaultPath, gotPath)
}

func TestLoaderRemoteFailuresYieldEmptyIndex(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing.json":
			http.NotFound(w, r)
		case "/broken.json":
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}
	}))
	defer srv.Close()

	l := NewLoader(zerolog.Nop())

	tests := []struct {
		name    string
		src     Source
		wantErr error
	}{
		{"not found", Remote(srv.URL + "/missing.json"), ErrBadStatus},
		{"malformed", Remote(srv.URL + "/broken.json"), nil},
		{"relative without base", Remote(DefaultPath), ErrUnsupportedScheme},
		{"file scheme", Remote("file:///tmp/search-index.json"), ErrUnsupportedScheme},
		{"unreachable", Remote("http://127.0.0.1:1/search-index.json"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := l.Fetch(context.Background(), tt.src)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
			}

			idx := l.Load(context.Background(), tt.src)
			assert.NotNil(t, idx)
			assert.Empty(t, idx)
		})
	}
}

func TestLoaderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "search-index.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleIndex), 0o600))

	l := NewLoader(zerolog.Nop())

	idx, err := l.Fetch(context.Background(), File(path))
	require.NoError(t, err)
	assert.Len(t, idx, 2)

	_, err = l.Fetch(context.Background(), File(filepath.Join(dir, "missing.json")))
	assert.Error(t, err)
}

func TestSourceLocation(t *testing.T) {
	assert.Equal(t, "../assets/search-index.json", RemoteFor("../").Location())
	assert.Equal(t, "/tmp/x.json", File("/tmp/x.json").Location())
	assert.Equal(t, "embedded", Embedded(nil).Location())
}
