package blog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writePostFile writes a markdown post with front matter into dir.
func writePostFile(t *testing.T, dir, name, frontMatter string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("---\n"+frontMatter+"---\nBody of "+name+".\n"), 0o644))
}

// writeFixturePosts writes post-1 to post-n, one day apart, tagged "go" when
// odd and "web" when even, plus one draft.
func writeFixturePosts(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		tag := "web"
		if i%2 == 1 {
			tag = "go"
		}
		writePostFile(t, dir, fmt.Sprintf("post-%d.md", i), fmt.Sprintf(
			"title: Post %d\npubDatetime: 2024-01-%02dT10:00:00Z\ndescription: Description %d\ntags:\n  - %s\n",
			i, i, i, tag))
	}
	writePostFile(t, dir, "secret-draft.md",
		"title: Secret Draft\npubDatetime: 2024-02-01T10:00:00Z\ndescription: Not yet\ndraft: true\n")
}

func testConfig(t *testing.T) SiteConfig {
	t.Helper()
	dir := t.TempDir()
	cfg, err := NewConfig(SiteConfig{
		Site: Site{
			Title:       "Test Blog",
			Author:      "Tester",
			Description: "A blog under test",
			PostPerPage: 3,
		},
		DatabasePath: filepath.Join(dir, "data", "blog.db"),
		ContentDir:   filepath.Join(dir, "content"),
		StaticDir:    filepath.Join(dir, "public"),
	})
	require.NoError(t, err)
	return cfg
}

// newTestApp opens an App over cfg and syncs its content directory.
func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	a := New(cfg, opts...)
	require.NoError(t, a.Open())
	t.Cleanup(func() { a.Close() })
	_, err := a.SyncContent(context.Background())
	require.NoError(t, err)
	return a
}

func doRequest(a *App, method, target string, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}
