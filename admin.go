package blog

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/copydataai/blog/posts"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(a.site, false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	log.Warn().Str("ip", ip).Msg("Failed admin login")
	return RenderStatus(c, http.StatusUnauthorized, a.Views.AdminLogin(a.site, true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

// handleAdminSync reloads the content directory on demand.
func (a *App) handleAdminSync(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	res, err := a.SyncContent(c.Request().Context())
	if err != nil {
		return err
	}
	msg := fmt.Sprintf("Synced %d posts (%d drafts).", res.Loaded, res.Drafts)
	if res.Failed != nil {
		msg += " Some files failed: " + res.Failed.Error()
	}
	return a.renderAdminDashboard(c, msg)
}

// handleAdminPreview renders any stored post, drafts included.
func (a *App) handleAdminPreview(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post, err := a.Store.GetPost(c.Request().Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	return Render(c, a.Views.Post(a.site, post, nil, nil, post.Draft))
}

// renderAdminDashboard lists every stored post, drafts first, each group
// newest first.
func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	all, err := a.Store.ListAllPosts(c.Request().Context())
	if err != nil {
		return err
	}
	var drafts []posts.Post
	for _, p := range all {
		if p.Draft {
			drafts = append(drafts, p)
		}
	}
	listing := append(posts.NewestFirst(drafts), posts.SortedPosts(all)...)
	return Render(c, a.Views.AdminDashboard(a.site, listing, msg, CsrfToken(c)))
}
