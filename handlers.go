package blog

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/copydataai/blog/posts"
	"github.com/copydataai/blog/views"
)

func (a *App) setupRoutes() {
	e := a.Echo

	assets, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/assets/*", echo.WrapHandler(http.StripPrefix("/assets/", http.FileServer(http.FS(assets)))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/rss.xml", a.handleFeed)
	e.GET("/og.png", a.handleSiteOG)
	e.GET("/og/:slug/", a.handlePostOG)

	e.GET("/", a.handleHome)
	e.GET("/posts/", a.handlePosts)
	e.GET("/posts/page/:page/", a.handlePostsPage)
	e.GET("/posts/:slug/", a.handlePost)
	e.GET("/tags/", a.handleTags)
	e.GET("/tags/:tag/", a.handleTag)
	e.GET("/tags/:tag/page/:page/", a.handleTagPage)

	if a.AdminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		e.POST("/admin/sync/", a.handleAdminSync)
		e.GET("/admin/preview/:slug/", a.handleAdminPreview)
	}
}

// handleHome serves the landing page: featured posts and the first page of
// the remaining posts.
func (a *App) handleHome(c echo.Context) error {
	sorted, err := a.Cache.SortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	featured := posts.FeaturedPosts(sorted)
	var rest []posts.Post
	for _, p := range sorted {
		if !p.Featured {
			rest = append(rest, p)
		}
	}
	recent := posts.Paginate(a.Config.PageConfig(), rest, "", true)
	return Render(c, a.Views.Home(a.site, featured, recent))
}

func (a *App) handlePosts(c echo.Context) error {
	return a.renderListing(c, "", true)
}

func (a *App) handlePostsPage(c echo.Context) error {
	return a.renderListing(c, c.Param("page"), false)
}

func (a *App) renderListing(c echo.Context, page string, isIndex bool) error {
	sorted, err := a.Cache.SortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	pg := posts.Paginate(a.Config.PageConfig(), sorted, page, isIndex)
	if !pg.Found() {
		return echo.ErrNotFound
	}
	if !isIndex && pg.CurrentPage == 1 {
		return c.Redirect(http.StatusMovedPermanently, "/posts/")
	}
	return Render(c, a.Views.PostList(a.site, "Posts", "All the articles I've posted.", pg, "/posts/", "posts"))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := a.Cache.GetPost(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.ErrNotFound
		}
		return err
	}
	sorted, err := a.Cache.SortedPosts(ctx)
	if err != nil {
		return err
	}
	newer, older := posts.Neighbours(sorted, post.Slug)
	return Render(c, a.Views.Post(a.site, post, newer, older, false))
}

func (a *App) handleTags(c echo.Context) error {
	tags, err := a.Cache.Tags(c.Request().Context())
	if err != nil {
		return err
	}
	return Render(c, a.Views.Tags(a.site, tags))
}

func (a *App) handleTag(c echo.Context) error {
	return a.renderTagListing(c, c.Param("tag"), "", true)
}

func (a *App) handleTagPage(c echo.Context) error {
	return a.renderTagListing(c, c.Param("tag"), c.Param("page"), false)
}

func (a *App) renderTagListing(c echo.Context, tag, page string, isIndex bool) error {
	tagged, err := a.Cache.PostsByTag(c.Request().Context(), tag)
	if err != nil {
		return err
	}
	if len(tagged) == 0 {
		return echo.ErrNotFound
	}
	pg := posts.Paginate(a.Config.PageConfig(), tagged, page, isIndex)
	if !pg.Found() {
		return echo.ErrNotFound
	}
	base := views.TagURL(tag)
	if !isIndex && pg.CurrentPage == 1 {
		return c.Redirect(http.StatusMovedPermanently, base)
	}
	heading := "Tag: " + tag
	desc := fmt.Sprintf("All the articles with the tag %q.", tag)
	return Render(c, a.Views.PostList(a.site, heading, desc, pg, base, "tags"))
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", views.BuildURL(a.Config.Site.Website)+"sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) handleSitemap(c echo.Context) error {
	sorted, err := a.Cache.SortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, sorted)
}

func (a *App) handleFeed(c echo.Context) error {
	sorted, err := a.Cache.SortedPosts(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, sorted)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("Server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
