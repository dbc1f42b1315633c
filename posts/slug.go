package posts

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var fold = cases.Lower(language.Und)

// Slugify converts a tag or title to a URL-safe slug: lower case, diacritics
// stripped, and every run of non-alphanumeric runes collapsed into one '-'.
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		stripped = s
	}
	stripped = fold.String(strings.TrimSpace(stripped))

	var b strings.Builder
	prev := false
	for _, r := range stripped {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// SlugifyAll slugifies every entry of tags.
func SlugifyAll(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = Slugify(t)
	}
	return out
}
