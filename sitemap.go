package blog

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/copydataai/blog/posts"
	"github.com/copydataai/blog/views"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the home page, every listing page, every tag page and
// every visible post.
func (a *App) renderSitemap(c echo.Context, sorted []posts.Post) error {
	base := a.Config.Site.Website
	cfg := a.Config.PageConfig()
	urls := []sitemapURL{
		{Loc: views.BuildURL(base)},
		{Loc: views.BuildURL(base, "tags")},
	}
	for _, n := range posts.PageNumbers(len(sorted), cfg) {
		urls = append(urls, sitemapURL{Loc: views.BuildURL(base) + views.PageURL("/posts/", n)[1:]})
	}
	for _, tag := range posts.UniqueTags(sorted) {
		tagged := posts.PostsByTag(sorted, tag)
		for _, n := range posts.PageNumbers(len(tagged), cfg) {
			urls = append(urls, sitemapURL{Loc: views.BuildURL(base) + views.PageURL(views.TagURL(tag), n)[1:]})
		}
	}
	for _, p := range sorted {
		urls = append(urls, sitemapURL{
			Loc:     views.BuildURL(base, "posts", p.Slug),
			LastMod: p.LastModified().UTC().Format("2006-01-02"),
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
