package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// Layout wraps body in the site shell: <head> metadata, header navigation
// and footer. active names the highlighted nav entry ("posts", "tags").
func Layout(site Site, meta PageMeta, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		title := site.Title
		if meta.Title != "" && meta.Title != site.Title {
			title = meta.Title + " | " + site.Title
		}
		desc := meta.Description
		if desc == "" {
			desc = site.Description
		}
		canonical := meta.URL
		if canonical == "" {
			canonical = BuildURL(site.URL)
		}
		ogType := meta.OGType
		if ogType == "" {
			ogType = "website"
		}
		ogImage := meta.OGImage
		if ogImage == "" {
			ogImage = BuildURL(site.URL) + "og.png"
		}
		lang := site.Lang
		if lang == "" {
			lang = "en"
		}

		w.raw("<!DOCTYPE html><html")
		w.attr("lang", lang)
		w.raw(`><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw("<title>")
		w.text(title)
		w.raw("</title>")
		w.raw(`<link rel="canonical"`)
		w.href(canonical)
		w.raw(`><meta name="description"`)
		w.attr("content", desc)
		w.raw(`><meta name="author"`)
		w.attr("content", site.Author)
		w.raw(`><meta property="og:title"`)
		w.attr("content", title)
		w.raw(`><meta property="og:description"`)
		w.attr("content", desc)
		w.raw(`><meta property="og:url"`)
		w.attr("content", canonical)
		w.raw(`><meta property="og:type"`)
		w.attr("content", ogType)
		w.raw(`><meta property="og:image"`)
		w.attr("content", ogImage)
		w.raw(`><meta name="twitter:card" content="summary_large_image">`)
		w.raw(`<link rel="alternate" type="application/rss+xml"`)
		w.attr("title", site.Title)
		w.raw(` href="/rss.xml"><link rel="stylesheet" href="/assets/style.css">`)
		if site.LightAndDarkMode {
			w.raw(`<script src="/assets/theme.js"></script>`)
		}
		w.raw(`<script type="application/ld+json">`)
		if meta.JSONLD != "" {
			w.raw(meta.JSONLD)
		} else {
			w.raw(WebsiteJsonLD(site))
		}
		w.raw("</script></head><body>")

		w.render(ctx, header(site, active))
		w.raw(`<main id="main-content">`)
		w.render(ctx, body)
		w.raw("</main>")
		w.render(ctx, footer(site))
		w.raw("</body></html>")
		return w.err
	})
}

func header(site Site, active string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<header><a id="skip-to-content" href="#main-content">Skip to content</a><div class="nav-container"><a href="/" class="logo">`)
		if site.Logo.Enable {
			src := "/public/logo.png"
			if site.Logo.SVG {
				src = "/public/logo.svg"
			}
			w.raw("<img")
			w.attr("src", src)
			w.attr("alt", site.Title)
			w.attr("width", strconv.Itoa(site.Logo.Width))
			w.attr("height", strconv.Itoa(site.Logo.Height))
			w.raw(">")
		} else {
			w.text(site.Title)
		}
		w.raw(`</a><nav><ul>`)
		for _, item := range []struct{ key, label, href string }{
			{"posts", "Posts", "/posts/"},
			{"tags", "Tags", "/tags/"},
		} {
			w.raw("<li><a")
			w.href(item.href)
			if item.key == active {
				w.raw(` class="active" aria-current="page"`)
			}
			w.raw(">")
			w.text(item.label)
			w.raw("</a></li>")
		}
		if site.LightAndDarkMode {
			w.raw(`<li><button id="theme-btn" title="Toggles light &amp; dark" aria-label="auto" aria-live="polite">Theme</button></li>`)
		}
		w.raw("</ul></nav></div></header>")
		return w.err
	})
}

func footer(site Site) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<footer>`)
		w.render(ctx, socials(site.Socials))
		w.raw(`<div class="copyright">Copyright &#169; `)
		w.text(strconv.Itoa(time.Now().In(site.location()).Year()))
		w.raw(" ")
		w.text(site.Author)
		w.raw(" | All rights reserved.</div></footer>")
		return w.err
	})
}

func socials(links []Social) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if len(links) == 0 {
			return nil
		}
		w := &writer{w: out}
		w.raw(`<div class="social-icons">`)
		for _, s := range links {
			w.raw(`<a target="_blank" rel="noopener"`)
			w.href(s.Href)
			w.attr("title", s.LinkTitle)
			w.raw(">")
			w.text(s.Name)
			w.raw("</a>")
		}
		w.raw("</div>")
		return w.err
	})
}
