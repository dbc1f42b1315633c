package views

import "time"

// Site holds the site-wide values every template needs. It is derived from
// the application configuration once and passed to each component.
type Site struct {
	Title            string
	Description      string
	Author           string
	URL              string // canonical base, e.g. https://example.com/
	Lang             string // html lang attribute
	OGImage          string
	LightAndDarkMode bool
	Logo             Logo
	Socials          []Social
	Location         *time.Location
}

// Logo describes the optional header logo.
type Logo struct {
	Enable bool
	SVG    bool
	Width  int
	Height int
}

// Social is a rendered social link.
type Social struct {
	Name      string
	Href      string
	LinkTitle string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	OGImage     string
	JSONLD      string
}

func (s Site) location() *time.Location {
	if s.Location == nil {
		return time.UTC
	}
	return s.Location
}
