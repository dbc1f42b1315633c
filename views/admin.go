package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/copydataai/blog/posts"
)

// AdminLogin renders the password form.
func AdminLogin(site Site, showError bool, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section class="admin"><h1>Admin</h1>`)
		if showError {
			w.raw(`<p class="error">Invalid password.</p>`)
		}
		w.raw(`<form method="post" action="/admin/login/"><input type="hidden" name="_csrf"`)
		w.attr("value", csrfToken)
		w.raw(`><label>Password <input type="password" name="password" autocomplete="current-password" required></label><button type="submit">Log in</button></form></section>`)
		return w.err
	})
	return Layout(site, PageMeta{Title: "Admin"}, "", body)
}

// AdminDashboard lists every post, drafts included, with sync and logout
// controls.
func AdminDashboard(site Site, all []posts.Post, message, csrfToken string) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<section class="admin"><h1>Posts</h1>`)
		if message != "" {
			w.raw(`<p class="message">`)
			w.text(message)
			w.raw("</p>")
		}
		w.raw(`<form method="post" action="/admin/sync/">`)
		csrfInput(w, csrfToken)
		w.raw(`<button type="submit">Reload content</button></form>`)
		w.raw(`<form method="post" action="/admin/logout/">`)
		csrfInput(w, csrfToken)
		w.raw(`<button type="submit">Log out</button></form>`)
		w.raw(`<table><thead><tr><th>Title</th><th>Published</th><th>Status</th></tr></thead><tbody>`)
		for _, p := range all {
			w.raw("<tr><td><a")
			if p.Draft {
				w.href("/admin/preview/" + p.Slug + "/")
			} else {
				w.href(p.Link())
			}
			w.raw(">")
			w.text(p.Title)
			w.raw("</a></td><td>")
			_, date, clock := FormatDatetime(p.PubDatetime, p.ModDatetime, site.location())
			w.text(date + " " + clock)
			w.raw("</td><td>")
			if p.Draft {
				w.raw("draft")
			} else {
				w.raw("published")
			}
			w.raw("</td></tr>")
		}
		w.raw("</tbody></table></section>")
		return w.err
	})
	return Layout(site, PageMeta{Title: "Admin"}, "", body)
}

func csrfInput(w *writer, token string) {
	w.raw(`<input type="hidden" name="_csrf"`)
	w.attr("value", token)
	w.raw(">")
}
