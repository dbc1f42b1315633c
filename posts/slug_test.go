package posts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Hello World", "hello-world"},
		{"  Go  ", "go"},
		{"web-dev", "web-dev"},
		{"Web   Dev!!", "web-dev"},
		{"C++ & Rust", "c-rust"},
		{"Café Olé", "cafe-ole"},
		{"Ünïcödé", "unicode"},
		{"release 1.2", "release-1-2"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.input), "Slugify(%q)", tt.input)
	}
}

func TestSlugifyAll(t *testing.T) {
	assert.Equal(t, []string{"go", "web-dev"}, SlugifyAll([]string{"Go", "Web Dev"}))
	assert.Empty(t, SlugifyAll(nil))
}
