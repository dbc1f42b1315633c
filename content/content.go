// Package content loads blog posts from markdown files with YAML front matter.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/copydataai/blog/posts"
)

// DefaultTag is assigned to posts whose front matter lists no tags.
const DefaultTag = "others"

var (
	// ErrNoFrontMatter is returned for files that do not open with a '---' block.
	ErrNoFrontMatter = errors.New("missing front matter")

	validate = validator.New()

	delimiter = []byte("---")

	datetimeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05Z07:00",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

// FrontMatter is the YAML header of a post file.
type FrontMatter struct {
	Title       string   `yaml:"title" validate:"required,max=200"`
	Author      string   `yaml:"author,omitempty"`
	PubDatetime string   `yaml:"pubDatetime" validate:"required"`
	ModDatetime string   `yaml:"modDatetime,omitempty"`
	Description string   `yaml:"description" validate:"required"`
	Tags        []string `yaml:"tags,omitempty" validate:"dive,required"`
	Draft       bool     `yaml:"draft"`
	Featured    bool     `yaml:"featured"`
	OGImage     string   `yaml:"ogImage,omitempty"`
	Slug        string   `yaml:"slug,omitempty"`
}

// Loader reads posts from Dir. Files and directories whose name starts with
// '_' are skipped.
type Loader struct {
	Dir           string
	DefaultAuthor string
	// Location applies to datetimes written without a zone. Defaults to UTC.
	Location *time.Location
}

// Load parses every markdown file under Dir. Files that fail to parse are
// reported in the joined error and left out; the remaining posts are still
// returned. A nil slice means Dir itself could not be walked.
func (l Loader) Load(ctx context.Context) ([]posts.Post, error) {
	out := []posts.Post{}
	var errs []error
	err := filepath.WalkDir(l.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path != l.Dir && strings.HasPrefix(d.Name(), "_") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			return nil
		}
		p, err := l.Parse(filepath.Base(path), data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", path, err))
			return nil
		}
		out = append(out, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.Dir, err)
	}
	out, dupErr := dedupeSlugs(out)
	if dupErr != nil {
		errs = append(errs, dupErr)
	}
	return out, errors.Join(errs...)
}

// Parse builds a post from the raw contents of a markdown file named name.
func (l Loader) Parse(name string, data []byte) (posts.Post, error) {
	header, body, err := splitFrontMatter(data)
	if err != nil {
		return posts.Post{}, err
	}
	var fm FrontMatter
	if err := yaml.Unmarshal(header, &fm); err != nil {
		return posts.Post{}, fmt.Errorf("decode front matter: %w", err)
	}
	if err := validate.Struct(fm); err != nil {
		return posts.Post{}, fmt.Errorf("invalid front matter: %w", err)
	}

	pub, err := l.parseDatetime(fm.PubDatetime)
	if err != nil {
		return posts.Post{}, fmt.Errorf("pubDatetime: %w", err)
	}
	var mod time.Time
	if strings.TrimSpace(fm.ModDatetime) != "" {
		if mod, err = l.parseDatetime(fm.ModDatetime); err != nil {
			return posts.Post{}, fmt.Errorf("modDatetime: %w", err)
		}
	}

	html, err := RenderMarkdown(string(body))
	if err != nil {
		return posts.Post{}, fmt.Errorf("render markdown: %w", err)
	}

	slug := posts.Slugify(fm.Slug)
	if slug == "" {
		slug = posts.Slugify(strings.TrimSuffix(name, filepath.Ext(name)))
	}
	if slug == "" {
		return posts.Post{}, errors.New("cannot derive slug")
	}
	author := strings.TrimSpace(fm.Author)
	if author == "" {
		author = l.DefaultAuthor
	}
	tags := fm.Tags
	if len(tags) == 0 {
		tags = []string{DefaultTag}
	}

	return posts.Post{
		Slug:        slug,
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Author:      author,
		PubDatetime: pub,
		ModDatetime: mod,
		Tags:        tags,
		Draft:       fm.Draft,
		Featured:    fm.Featured,
		OGImage:     fm.OGImage,
		Body:        string(body),
		HTML:        html,
	}, nil
}

func (l Loader) parseDatetime(s string) (time.Time, error) {
	loc := l.Location
	if loc == nil {
		loc = time.UTC
	}
	s = strings.TrimSpace(s)
	for _, layout := range datetimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised datetime %q", s)
}

// splitFrontMatter separates the YAML header from the markdown body.
func splitFrontMatter(data []byte) (header, body []byte, err error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	first, rest, ok := bytes.Cut(data, []byte("\n"))
	if !ok || !bytes.Equal(bytes.TrimSpace(first), delimiter) {
		return nil, nil, ErrNoFrontMatter
	}
	// The closing delimiter may be the very first line of rest.
	if bytes.HasPrefix(rest, delimiter) {
		_, after, _ := bytes.Cut(rest, []byte("\n"))
		return nil, after, nil
	}
	header, body, ok = bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return nil, nil, fmt.Errorf("%w: unterminated block", ErrNoFrontMatter)
	}
	_, body, _ = bytes.Cut(body, []byte("\n"))
	return header, body, nil
}

// dedupeSlugs keeps the first post for every slug.
func dedupeSlugs(ps []posts.Post) ([]posts.Post, error) {
	seen := make(map[string]struct{}, len(ps))
	out := ps[:0]
	var errs []error
	for _, p := range ps {
		if _, ok := seen[p.Slug]; ok {
			errs = append(errs, fmt.Errorf("duplicate slug %q", p.Slug))
			continue
		}
		seen[p.Slug] = struct{}{}
		out = append(out, p)
	}
	return out, errors.Join(errs...)
}
