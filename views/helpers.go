package views

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/copydataai/blog/posts"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PageURL returns the listing URL for page n under base ("/posts/",
// "/tags/go/"). Page 1 is the base itself.
func PageURL(base string, n int) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%spage/%d/", base, n)
}

// TagURL returns the listing URL of a tag.
func TagURL(tag string) string {
	return "/tags/" + url.PathEscape(posts.Slugify(tag)) + "/"
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block.
func WebsiteJsonLD(site Site) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     site.Title,
		"url":      BuildURL(site.URL),
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  site.Author,
		}
	}
	return marshalJSONLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(site Site, post posts.Post) string {
	postURL := BuildURL(site.URL, "posts", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Description,
		"datePublished": post.PubDatetime.UTC().Format("2006-01-02T15:04:05Z07:00"),
		"url":           postURL,
		"image":         BuildURL(site.URL, "og", post.Slug),
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Title,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if post.Updated() {
		data["dateModified"] = post.ModDatetime.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if post.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  post.Author,
		}
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	return marshalJSONLD(data)
}

func marshalJSONLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// writer accumulates the first write error so components can emit markup
// without checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) attr(name, value string) {
	w.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

func (w *writer) href(u string) {
	w.attr("href", string(templ.URL(u)))
}

func (w *writer) render(ctx context.Context, c templ.Component) {
	if w.err != nil || c == nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}
