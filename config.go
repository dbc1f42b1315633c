package blog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/copydataai/blog/posts"
	"github.com/copydataai/blog/views"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. BLOG_SITE_POSTPERPAGE or BLOG_ADMINPASSWORD.
const EnvPrefix = "BLOG"

var validate = validator.New()

// Site holds the public identity of the blog.
type Site struct {
	Website          string `mapstructure:"website" validate:"required,url"`
	Author           string `mapstructure:"author"`
	Description      string `mapstructure:"description"`
	Title            string `mapstructure:"title" validate:"required"`
	OGImage          string `mapstructure:"ogImage"`
	LightAndDarkMode bool   `mapstructure:"lightAndDarkMode"`
	PostPerPage      int    `mapstructure:"postPerPage" validate:"gt=0"`
	Timezone         string `mapstructure:"timezone"`
}

// Locale sets the html lang attribute and the BCP 47 tags of the site.
type Locale struct {
	Lang    string   `mapstructure:"lang"`
	LangTag []string `mapstructure:"langTag"`
}

// LogoImage configures the optional header logo.
type LogoImage struct {
	Enable bool `mapstructure:"enable"`
	SVG    bool `mapstructure:"svg"`
	Width  int  `mapstructure:"width" validate:"gte=0"`
	Height int  `mapstructure:"height" validate:"gte=0"`
}

// Social is a footer/hero link. LinkTitle may contain "{author}".
type Social struct {
	Name      string `mapstructure:"name" validate:"required"`
	Href      string `mapstructure:"href" validate:"required"`
	LinkTitle string `mapstructure:"linkTitle"`
	Active    bool   `mapstructure:"active"`
}

// SiteConfig holds all configuration for a blog. Build it with LoadConfig or
// NewConfig and treat it as immutable afterwards.
type SiteConfig struct {
	Site    Site      `mapstructure:"site"`
	Locale  Locale    `mapstructure:"locale"`
	Logo    LogoImage `mapstructure:"logo"`
	Socials []Social  `mapstructure:"socials" validate:"dive"`

	Addr         string `mapstructure:"addr"`         // listen address (default ":3000")
	DatabasePath string `mapstructure:"databasePath"` // SQLite path (default "data/blog.db")
	ContentDir   string `mapstructure:"contentDir"`   // markdown posts (default "content/blog")
	StaticDir    string `mapstructure:"staticDir"`    // user assets (default "public")
	SyncSchedule string `mapstructure:"syncSchedule"` // cron spec; empty disables periodic sync

	AdminPassword string `mapstructure:"adminPassword"`
	SessionSecret string `mapstructure:"sessionSecret"`
	CookieSecure  bool   `mapstructure:"cookieSecure"`

	PostCacheTTL time.Duration `mapstructure:"postCacheTTL"` // default 5min

	location *time.Location
}

// LoadConfig reads path (YAML, optional when empty) and BLOG_* environment
// variables into a validated SiteConfig.
func LoadConfig(path string) (SiteConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"site.website", "site.author", "site.description", "site.title", "site.ogImage",
		"site.lightAndDarkMode", "site.postPerPage", "site.timezone",
		"locale.lang", "addr", "databasePath", "contentDir", "staticDir", "syncSchedule",
		"adminPassword", "sessionSecret", "cookieSecure", "postCacheTTL",
	} {
		// AutomaticEnv only sees keys viper already knows about.
		if err := v.BindEnv(key); err != nil {
			return SiteConfig{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return SiteConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return NewConfig(cfg)
}

// NewConfig fills defaults into cfg and validates it.
func NewConfig(cfg SiteConfig) (SiteConfig, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return SiteConfig{}, err
	}
	loc, err := time.LoadLocation(cfg.Site.Timezone)
	if err != nil {
		return SiteConfig{}, fmt.Errorf("site.timezone: %w", err)
	}
	cfg.location = loc
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Blog"
	}
	if c.Site.Website == "" {
		c.Site.Website = "http://localhost:3000/"
	}
	if c.Site.PostPerPage == 0 {
		c.Site.PostPerPage = 5
	}
	if c.Site.Timezone == "" {
		c.Site.Timezone = "UTC"
	}
	if c.Locale.Lang == "" {
		c.Locale.Lang = "en"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.ContentDir == "" {
		c.ContentDir = "content/blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

func (c SiteConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	var errs []error
	for _, tag := range c.Locale.LangTag {
		if _, err := language.Parse(tag); err != nil {
			errs = append(errs, fmt.Errorf("locale.langTag %q: %w", tag, err))
		}
	}
	if _, err := language.Parse(c.Locale.Lang); err != nil {
		errs = append(errs, fmt.Errorf("locale.lang %q: %w", c.Locale.Lang, err))
	}
	return errors.Join(errs...)
}

// PageConfig returns the listing page size.
func (c SiteConfig) PageConfig() posts.PageConfig {
	return posts.PageConfig{PostPerPage: c.Site.PostPerPage}
}

// Location returns the time zone used to display dates.
func (c SiteConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ActiveSocials returns the enabled social links with {author} substituted.
func (c SiteConfig) ActiveSocials() []Social {
	var out []Social
	for _, s := range c.Socials {
		if !s.Active {
			continue
		}
		s.LinkTitle = strings.ReplaceAll(s.LinkTitle, "{author}", c.Site.Author)
		out = append(out, s)
	}
	return out
}

// View converts the configuration into the values templates render.
func (c SiteConfig) View() views.Site {
	active := c.ActiveSocials()
	socials := make([]views.Social, len(active))
	for i, s := range active {
		socials[i] = views.Social{Name: s.Name, Href: s.Href, LinkTitle: s.LinkTitle}
	}
	return views.Site{
		Title:            c.Site.Title,
		Description:      c.Site.Description,
		Author:           c.Site.Author,
		URL:              c.Site.Website,
		Lang:             c.Locale.Lang,
		OGImage:          c.Site.OGImage,
		LightAndDarkMode: c.Site.LightAndDarkMode,
		Logo: views.Logo{
			Enable: c.Logo.Enable,
			SVG:    c.Logo.SVG,
			Width:  c.Logo.Width,
			Height: c.Logo.Height,
		},
		Socials:  socials,
		Location: c.Location(),
	}
}
