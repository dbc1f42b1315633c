// Package scaffold renders the embedded template used by "blog new" to
// start a post.
package scaffold

import (
	"embed"
	"fmt"
	"io"
	"text/template"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/copydataai/blog/content"
)

// Templates contains all scaffold template files.
// Files use Go text/template syntax and have a .tmpl suffix.
//
//go:embed all:templates
var Templates embed.FS

var postTemplate = template.Must(template.ParseFS(Templates, "templates/post.md.tmpl"))

// PostData holds the values substituted into a new post.
type PostData struct {
	Title       string
	Author      string
	Description string
	Tags        []string
	PubDatetime time.Time
}

// RenderPost writes the front matter and starter body of a new draft post.
// The front matter is encoded with the same struct the content loader reads.
func RenderPost(w io.Writer, data PostData) error {
	tags := data.Tags
	if len(tags) == 0 {
		tags = []string{content.DefaultTag}
	}
	header, err := yaml.Marshal(content.FrontMatter{
		Title:       data.Title,
		Author:      data.Author,
		PubDatetime: data.PubDatetime.Format(time.RFC3339),
		Description: data.Description,
		Tags:        tags,
		Draft:       true,
	})
	if err != nil {
		return fmt.Errorf("encode front matter: %w", err)
	}
	return postTemplate.Execute(w, struct{ FrontMatter string }{string(header)})
}
