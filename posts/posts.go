// Package posts holds the blog post record and the pure functions that turn a
// content snapshot into visible, sorted, tag-filtered and paginated listings.
package posts

import (
	"slices"
	"sort"
	"time"
)

// Post is a single blog entry as loaded from the content directory.
type Post struct {
	Slug        string
	Title       string
	Description string
	Author      string
	PubDatetime time.Time
	ModDatetime time.Time // zero when the post was never modified
	Tags        []string
	Draft       bool
	Featured    bool
	OGImage     string
	Body        string // markdown source
	HTML        string // rendered and sanitized body
}

// Link returns the site-relative URL of the post page.
func (p Post) Link() string {
	return "/posts/" + p.Slug + "/"
}

// Updated reports whether the post carries a modification time later than
// its publish time.
func (p Post) Updated() bool {
	return !p.ModDatetime.IsZero() && p.ModDatetime.After(p.PubDatetime)
}

// LastModified returns ModDatetime when the post was updated, PubDatetime otherwise.
func (p Post) LastModified() time.Time {
	if p.Updated() {
		return p.ModDatetime
	}
	return p.PubDatetime
}

// PostsByTag returns the posts whose slugified tags contain tag, in input order.
func PostsByTag(posts []Post, tag string) []Post {
	out := []Post{}
	if tag == "" {
		return out
	}
	for _, p := range posts {
		if slices.Contains(SlugifyAll(p.Tags), tag) {
			out = append(out, p)
		}
	}
	return out
}

// SortedPosts drops drafts and orders the rest newest first. Publish times are
// compared at whole-second resolution and equal seconds keep input order.
func SortedPosts(posts []Post) []Post {
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !p.Draft {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out
}

// NewestFirst returns a copy of posts, drafts included, ordered like
// SortedPosts.
func NewestFirst(posts []Post) []Post {
	out := slices.Clone(posts)
	if out == nil {
		out = []Post{}
	}
	sortNewestFirst(out)
	return out
}

func sortNewestFirst(out []Post) {
	slices.SortStableFunc(out, func(a, b Post) int {
		as, bs := a.PubDatetime.Unix(), b.PubDatetime.Unix()
		switch {
		case as > bs:
			return -1
		case as < bs:
			return 1
		}
		return 0
	})
}

// FeaturedPosts returns the featured entries of an already sorted sequence.
func FeaturedPosts(sorted []Post) []Post {
	out := []Post{}
	for _, p := range sorted {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// UniqueTags returns the sorted set of slugified tags of all non-draft posts.
func UniqueTags(posts []Post) []string {
	set := make(map[string]struct{})
	for _, p := range posts {
		if p.Draft {
			continue
		}
		for _, t := range SlugifyAll(p.Tags) {
			if t != "" {
				set[t] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(set))
	for t := range set {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Neighbours returns the posts before (newer) and after (older) slug in a
// sorted sequence. Missing neighbours are returned as nil.
func Neighbours(sorted []Post, slug string) (newer, older *Post) {
	for i := range sorted {
		if sorted[i].Slug != slug {
			continue
		}
		if i > 0 {
			newer = &sorted[i-1]
		}
		if i+1 < len(sorted) {
			older = &sorted[i+1]
		}
		return newer, older
	}
	return nil, nil
}
