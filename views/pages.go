package views

import (
	"context"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/copydataai/blog/posts"
)

// Card renders a post summary as a list item.
func Card(post posts.Post, loc *time.Location) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<li class="card"><a`)
		w.href(post.Link())
		w.raw(`><h3>`)
		w.text(post.Title)
		w.raw("</h3></a>")
		w.render(ctx, Datetime(post.PubDatetime, post.ModDatetime, SizeSmall, "", loc))
		w.raw("<p>")
		w.text(post.Description)
		w.raw("</p></li>")
		return w.err
	})
}

func cardList(items []posts.Post, loc *time.Location) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw("<ul>")
		for _, p := range items {
			w.render(ctx, Card(p, loc))
		}
		w.raw("</ul>")
		return w.err
	})
}

// PaginationNav renders the previous/next links of a listing rooted at base.
func PaginationNav(pg posts.Pagination[posts.Post], base string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if pg.TotalPages <= 1 {
			return nil
		}
		w := &writer{w: out}
		w.raw(`<nav class="pagination-wrapper" aria-label="Pagination">`)
		if pg.HasPrev() {
			w.raw(`<a rel="prev"`)
			w.href(PageURL(base, pg.CurrentPage-1))
			w.raw(`>Prev</a>`)
		} else {
			w.raw(`<span class="disabled" aria-disabled="true">Prev</span>`)
		}
		w.raw("<span>")
		w.text(strconv.Itoa(pg.CurrentPage) + " / " + strconv.Itoa(pg.TotalPages))
		w.raw("</span>")
		if pg.HasNext() {
			w.raw(`<a rel="next"`)
			w.href(PageURL(base, pg.CurrentPage+1))
			w.raw(`>Next</a>`)
		} else {
			w.raw(`<span class="disabled" aria-disabled="true">Next</span>`)
		}
		w.raw("</nav>")
		return w.err
	})
}

// Home renders the landing page: hero, featured posts and the first page of
// recent posts.
func Home(site Site, featured []posts.Post, recent posts.Pagination[posts.Post]) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section id="hero"><h1>`)
		w.text(site.Title)
		w.raw("</h1><p>")
		w.text(site.Description)
		w.raw(`</p><a href="/rss.xml" class="rss-link" aria-label="rss feed">RSS</a>`)
		w.render(ctx, socials(site.Socials))
		w.raw("</section>")
		if len(featured) > 0 {
			w.raw(`<section id="featured"><h2>Featured</h2>`)
			w.render(ctx, cardList(featured, site.location()))
			w.raw("</section>")
		}
		if len(recent.Items) > 0 {
			w.raw(`<section id="recent-posts"><h2>Recent Posts</h2>`)
			w.render(ctx, cardList(recent.Items, site.location()))
			w.raw("</section>")
		}
		if recent.HasNext() {
			w.raw(`<div class="all-posts-btn-wrapper"><a href="/posts/">All Posts</a></div>`)
		}
		return w.err
	})
	return Layout(site, PageMeta{URL: BuildURL(site.URL)}, "", body)
}

// PostList renders one page of a listing. base is the URL of its first page.
func PostList(site Site, heading, description string, pg posts.Pagination[posts.Post], base, active string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section class="page"><h1>`)
		w.text(heading)
		w.raw("</h1><p>")
		w.text(description)
		w.raw("</p>")
		w.render(ctx, cardList(pg.Items, site.location()))
		w.raw("</section>")
		w.render(ctx, PaginationNav(pg, base))
		return w.err
	})
	meta := PageMeta{
		Title:       heading,
		Description: description,
		URL:         BuildURL(site.URL) + trimLeadingSlash(PageURL(base, pg.CurrentPage)),
	}
	return Layout(site, meta, active, body)
}

// PostPage renders a single post with its tags and links to the neighbouring
// posts. preview marks a draft shown to an authenticated author.
func PostPage(site Site, post posts.Post, newer, older *posts.Post, preview bool) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		if preview {
			w.raw(`<div class="preview-banner">Draft preview</div>`)
		}
		w.raw(`<article id="article"><h1 class="post-title">`)
		w.text(post.Title)
		w.raw("</h1>")
		w.render(ctx, Datetime(post.PubDatetime, post.ModDatetime, SizeLarge, "my-2", site.location()))
		w.raw(`<div class="prose">`)
		w.render(ctx, templ.Raw(post.HTML))
		w.raw(`</div><ul class="tags">`)
		for _, t := range post.Tags {
			w.raw("<li><a")
			w.href(TagURL(t))
			w.raw(">#")
			w.text(posts.Slugify(t))
			w.raw("</a></li>")
		}
		w.raw(`</ul></article><nav class="post-neighbours">`)
		if newer != nil {
			w.raw(`<a rel="prev"`)
			w.href(newer.Link())
			w.raw("><span>Previous Post</span> ")
			w.text(newer.Title)
			w.raw("</a>")
		}
		if older != nil {
			w.raw(`<a rel="next"`)
			w.href(older.Link())
			w.raw("><span>Next Post</span> ")
			w.text(older.Title)
			w.raw("</a>")
		}
		w.raw("</nav>")
		return w.err
	})
	meta := PageMeta{
		Title:       post.Title,
		Description: post.Description,
		URL:         BuildURL(site.URL, "posts", post.Slug),
		OGType:      "article",
		OGImage:     ogImageURL(site, post),
		JSONLD:      BlogPostingJsonLD(site, post),
	}
	return Layout(site, meta, "posts", body)
}

// TagsPage lists every tag.
func TagsPage(site Site, tags []string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section class="page"><h1>Tags</h1><p>All the tags used in posts.</p><ul class="tags">`)
		for _, t := range tags {
			w.raw("<li><a")
			w.href(TagURL(t))
			w.raw(">#")
			w.text(t)
			w.raw("</a></li>")
		}
		w.raw("</ul></section>")
		return w.err
	})
	return Layout(site, PageMeta{Title: "Tags", URL: BuildURL(site.URL, "tags")}, "tags", body)
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return Layout(site, PageMeta{Title: "404 Not Found"}, "", message("404", "Page Not Found"))
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return Layout(site, PageMeta{Title: "Server Error"}, "", message("500", "Something went wrong"))
}

func message(code, text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section class="not-found"><h1>`)
		w.text(code)
		w.raw("</h1><span>")
		w.text(text)
		w.raw(`</span><a href="/">Go back home</a></section>`)
		return w.err
	})
}

func ogImageURL(site Site, post posts.Post) string {
	if post.OGImage != "" {
		return post.OGImage
	}
	return BuildURL(site.URL, "og", post.Slug)
}

func trimLeadingSlash(s string) string {
	if len(s) > 0 && s[0] == '/' {
		return s[1:]
	}
	return s
}
