package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moriz82/folio/pkg/core"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name     string
		location string
		baseDir  string
		wantHTTP bool
		wantPath string
		wantErr  error
	}{
		{name: "https url", location: "https://example.com/posts.json", wantHTTP: true},
		{name: "relative path", location: "data/htb.json", baseDir: "/srv/site", wantPath: filepath.Join("/srv/site", "data", "htb.json")},
		{name: "site root path", location: "/data/htb.json", baseDir: "/srv/site", wantPath: filepath.Join("/srv/site", "data", "htb.json")},
		{name: "file url", location: "file:///tmp/posts.json", wantPath: filepath.FromSlash("/tmp/posts.json")},
		{name: "empty", location: "  ", wantErr: core.ErrConfigMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Open(tt.location, tt.baseDir, http.DefaultClient)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.wantHTTP {
				assert.IsType(t, &HTTPSource{}, src)
				return
			}
			fs, ok := src.(*FileSource)
			require.True(t, ok, "expected a FileSource, got %T", src)
			assert.Equal(t, tt.wantPath, fs.Path)
		})
	}
}

func TestOpen_UnsupportedScheme(t *testing.T) {
	_, err := Open("ftp://example.com/x.json", "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported source scheme")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stats.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"boxes": []}`), 0o600))

	body, err := (&FileSource{Path: path}).Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"boxes": []}`, string(body))

	_, err = (&FileSource{Path: filepath.Join(dir, "missing.json")}).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNetworkFailure)
}

func TestHTTPSource_Headers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	body, err := (&HTTPSource{URL: srv.URL, NoCache: true}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

func TestHTTPSource_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := (&HTTPSource{URL: url}).Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNetworkFailure)
}

func TestGitHubSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/moriz82/repos", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name": "folio", "stargazers_count": 4}]`))
	}))
	defer srv.Close()

	src, err := NewGitHubSource(GitHubOptions{User: "moriz82", Token: "secret", BaseURL: srv.URL})
	require.NoError(t, err)

	body, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name": "folio", "stargazers_count": 4}]`, string(body))
	assert.Equal(t, "github:moriz82", src.Describe())
}

func TestGitHubSource_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
	}))
	defer srv.Close()

	src, err := NewGitHubSource(GitHubOptions{User: "moriz82", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = src.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNetworkFailure)
}

func TestNewGitHubSource_RequiresUser(t *testing.T) {
	_, err := NewGitHubSource(GitHubOptions{})
	assert.ErrorIs(t, err, core.ErrConfigMissing)
}
