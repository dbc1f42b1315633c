package blog

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAdminPassword = "correct horse battery staple"

func newAdminApp(t *testing.T) *App {
	t.Helper()
	cfg := testConfig(t)
	cfg.AdminPassword = testAdminPassword
	cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	writeFixturePosts(t, cfg.ContentDir, 3)
	return newTestApp(t, cfg)
}

func findCookie(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// csrfCookie fetches the login page and returns the issued CSRF cookie.
func csrfCookie(t *testing.T, a *App) *http.Cookie {
	t.Helper()
	rec := doRequest(a, http.MethodGet, "/admin/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	c := findCookie(rec.Result(), "_csrf")
	require.NotNil(t, c)
	assert.Contains(t, rec.Body.String(), `value="`+c.Value+`"`)
	return c
}

func form(values map[string]string) string {
	v := url.Values{}
	for k, val := range values {
		v.Set(k, val)
	}
	return v.Encode()
}

// login authenticates and returns the CSRF and session cookies.
func login(t *testing.T, a *App) []*http.Cookie {
	t.Helper()
	csrf := csrfCookie(t, a)
	rec := doRequest(a, http.MethodPost, "/admin/login/",
		form(map[string]string{"password": testAdminPassword, "_csrf": csrf.Value}), csrf)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/", rec.Header().Get("Location"))
	sess := findCookie(rec.Result(), sessionName)
	require.NotNil(t, sess)
	return []*http.Cookie{csrf, sess}
}

func TestAdminLoginRejectsWrongPassword(t *testing.T) {
	a := newAdminApp(t)
	csrf := csrfCookie(t, a)

	rec := doRequest(a, http.MethodPost, "/admin/login/",
		form(map[string]string{"password": "wrong", "_csrf": csrf.Value}), csrf)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid password.")
	assert.Nil(t, findCookie(rec.Result(), sessionName))
}

func TestAdminLoginRequiresCSRFToken(t *testing.T) {
	a := newAdminApp(t)

	rec := doRequest(a, http.MethodPost, "/admin/login/", form(map[string]string{"password": testAdminPassword}))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newAdminApp(t)
	csrf := csrfCookie(t, a)
	body := form(map[string]string{"password": "wrong", "_csrf": csrf.Value})

	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusUnauthorized, doRequest(a, http.MethodPost, "/admin/login/", body, csrf).Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, doRequest(a, http.MethodPost, "/admin/login/", body, csrf).Code)
}

func TestAdminSuccessfulLoginsAreNotThrottled(t *testing.T) {
	a := newAdminApp(t)
	csrf := csrfCookie(t, a)
	body := form(map[string]string{"password": testAdminPassword, "_csrf": csrf.Value})

	for i := 0; i < 10; i++ {
		rec := doRequest(a, http.MethodPost, "/admin/login/", body, csrf)
		require.Equal(t, http.StatusSeeOther, rec.Code, "login %d", i+1)
	}
}

func TestAdminDashboardListsDrafts(t *testing.T) {
	a := newAdminApp(t)
	cookies := login(t, a)

	rec := doRequest(a, http.MethodGet, "/admin/", "", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Secret Draft")
	assert.Contains(t, body, `href="/admin/preview/secret-draft/"`)
	assert.Contains(t, body, `href="/posts/post-3/"`)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestAdminPreviewDraft(t *testing.T) {
	a := newAdminApp(t)

	rec := doRequest(a, http.MethodGet, "/admin/preview/secret-draft/", "")
	assert.Equal(t, http.StatusSeeOther, rec.Code, "anonymous preview redirects to login")

	cookies := login(t, a)
	rec = doRequest(a, http.MethodGet, "/admin/preview/secret-draft/", "", cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Secret Draft")

	rec = doRequest(a, http.MethodGet, "/admin/preview/missing/", "", cookies...)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminSync(t *testing.T) {
	a := newAdminApp(t)
	cookies := login(t, a)
	writePostFile(t, a.Config.ContentDir, "added.md",
		"title: Added Later\npubDatetime: 2025-01-01T00:00:00Z\ndescription: d\n")

	rec := doRequest(a, http.MethodPost, "/admin/sync/",
		form(map[string]string{"_csrf": cookies[0].Value}), cookies...)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Synced 5 posts (1 drafts).")

	rec = doRequest(a, http.MethodGet, "/posts/added/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminLogout(t *testing.T) {
	a := newAdminApp(t)
	cookies := login(t, a)

	rec := doRequest(a, http.MethodPost, "/admin/logout/",
		form(map[string]string{"_csrf": cookies[0].Value}), cookies...)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cleared := findCookie(rec.Result(), sessionName)
	require.NotNil(t, cleared)
	assert.True(t, cleared.MaxAge < 0)
}

func TestOpenRequiresSessionSecret(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminPassword = "secret"
	a := New(cfg)

	assert.Error(t, a.Open())
}
