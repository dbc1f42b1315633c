package blog

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/copydataai/blog/posts"
	"github.com/copydataai/blog/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language,omitempty"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	GUID        string   `xml:"guid"`
	Categories  []string `xml:"category"`
}

// renderRSS writes the feed for sorted, which must already exclude drafts.
func (a *App) renderRSS(c echo.Context, sorted []posts.Post) error {
	base := a.Config.Site.Website
	items := make([]rssItem, 0, len(sorted))
	for _, p := range sorted {
		postURL := views.BuildURL(base, "posts", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Description,
			PubDate:     p.LastModified().Format(time.RFC1123Z),
			GUID:        postURL,
			Categories:  posts.SlugifyAll(p.Tags),
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Site.Title,
			Link:        views.BuildURL(base),
			Description: a.Config.Site.Description,
			Language:    a.Config.Locale.Lang,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
