package blog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig(SiteConfig{})
	require.NoError(t, err)

	assert.Equal(t, "Blog", cfg.Site.Title)
	assert.Equal(t, "http://localhost:3000/", cfg.Site.Website)
	assert.Equal(t, 5, cfg.Site.PostPerPage)
	assert.Equal(t, "en", cfg.Locale.Lang)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "data/blog.db", cfg.DatabasePath)
	assert.Equal(t, "content/blog", cfg.ContentDir)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, 5*time.Minute, cfg.PostCacheTTL)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.Equal(t, 5, cfg.PageConfig().PostPerPage)
}

func TestNewConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  SiteConfig
	}{
		{"negative page size", SiteConfig{Site: Site{PostPerPage: -1}}},
		{"bad website", SiteConfig{Site: Site{Website: "not a url"}}},
		{"bad timezone", SiteConfig{Site: Site{Timezone: "Mars/Olympus"}}},
		{"bad lang tag", SiteConfig{Locale: Locale{LangTag: []string{"en-US", "!!"}}}},
		{"social without href", SiteConfig{Socials: []Social{{Name: "Github"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestNewConfigLocation(t *testing.T) {
	cfg, err := NewConfig(SiteConfig{Site: Site{Timezone: "Asia/Bangkok"}})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", cfg.Location().String())
	assert.Equal(t, "Asia/Bangkok", cfg.View().Location.String())
}

func TestActiveSocials(t *testing.T) {
	cfg, err := NewConfig(SiteConfig{
		Site: Site{Author: "Sat Naing"},
		Socials: []Social{
			{Name: "Github", Href: "https://github.com/satnaing", LinkTitle: "{author} on Github", Active: true},
			{Name: "Twitter", Href: "https://twitter.com/x", LinkTitle: "{author} on Twitter"},
		},
	})
	require.NoError(t, err)

	active := cfg.ActiveSocials()
	require.Len(t, active, 1)
	assert.Equal(t, "Sat Naing on Github", active[0].LinkTitle)
	assert.Equal(t, "{author} on Github", cfg.Socials[0].LinkTitle, "source config must stay untouched")

	view := cfg.View()
	require.Len(t, view.Socials, 1)
	assert.Equal(t, "Github", view.Socials[0].Name)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
site:
  website: https://example.com/
  title: Example
  author: Jane
  postPerPage: 4
  timezone: Europe/Berlin
locale:
  lang: de
  langTag: [de-DE]
socials:
  - name: Mail
    href: mailto:jane@example.com
    linkTitle: Send an email to {author}
    active: true
contentDir: posts
postCacheTTL: 30s
`), 0o644))
	t.Setenv("BLOG_SITE_POSTPERPAGE", "8")
	t.Setenv("BLOG_ADDR", ":8080")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", cfg.Site.Website)
	assert.Equal(t, "Example", cfg.Site.Title)
	assert.Equal(t, 8, cfg.Site.PostPerPage)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "de", cfg.Locale.Lang)
	assert.Equal(t, []string{"de-DE"}, cfg.Locale.LangTag)
	assert.Equal(t, "posts", cfg.ContentDir)
	assert.Equal(t, 30*time.Second, cfg.PostCacheTTL)
	assert.Equal(t, "Europe/Berlin", cfg.Location().String())
	require.Len(t, cfg.ActiveSocials(), 1)
	assert.Equal(t, "Send an email to Jane", cfg.ActiveSocials()[0].LinkTitle)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("BLOG_SITE_TITLE", "From Env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "From Env", cfg.Site.Title)
	assert.Equal(t, 5, cfg.Site.PostPerPage)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
