// Package blog is a personal blog engine built with Go, Echo, and templ.
// Posts are markdown files with YAML front matter; they are synced into
// SQLite and served as paginated listings, tag pages, RSS and a sitemap.
package blog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/copydataai/blog/posts"
	"github.com/copydataai/blog/views"
)

// ViewFuncs holds the templ components the handlers render. DefaultViews
// supplies the built-in theme; WithViews swaps individual pages.
type ViewFuncs struct {
	Home           func(site views.Site, featured []posts.Post, recent posts.Pagination[posts.Post]) templ.Component
	PostList       func(site views.Site, heading, description string, pg posts.Pagination[posts.Post], base, active string) templ.Component
	Post           func(site views.Site, post posts.Post, newer, older *posts.Post, preview bool) templ.Component
	Tags           func(site views.Site, tags []string) templ.Component
	AdminLogin     func(site views.Site, showError bool, csrfToken string) templ.Component
	AdminDashboard func(site views.Site, all []posts.Post, message, csrfToken string) templ.Component
	NotFound       func(site views.Site) templ.Component
	ServerError    func(site views.Site) templ.Component
}

// DefaultViews returns the components of the views package.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		PostList:       views.PostList,
		Post:           views.PostPage,
		Tags:           views.TagsPage,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// merge fills every nil component of v from fallback.
func (v ViewFuncs) merge(fallback ViewFuncs) ViewFuncs {
	if v.Home == nil {
		v.Home = fallback.Home
	}
	if v.PostList == nil {
		v.PostList = fallback.PostList
	}
	if v.Post == nil {
		v.Post = fallback.Post
	}
	if v.Tags == nil {
		v.Tags = fallback.Tags
	}
	if v.AdminLogin == nil {
		v.AdminLogin = fallback.AdminLogin
	}
	if v.AdminDashboard == nil {
		v.AdminDashboard = fallback.AdminDashboard
	}
	if v.NotFound == nil {
		v.NotFound = fallback.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = fallback.ServerError
	}
	return v
}

// App is the central blog application. It wires together the store, cache,
// handlers, middleware and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	site         views.Site
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the built-in components with the non-nil fields of v.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v.merge(a.Views)
	}
}

// New creates an App for a validated configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		site:   cfg.View(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AdminEnabled reports whether the admin routes are served.
func (a *App) AdminEnabled() bool {
	return a.Config.AdminPassword != ""
}

// Open initializes the store, cache, middleware and routes without starting
// the listener.
func (a *App) Open() error {
	if a.AdminEnabled() && a.Config.SessionSecret == "" {
		return errors.New("blog: SessionSecret is required when AdminPassword is set")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("blog: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start opens the app, syncs content, starts the sync scheduler and serves
// HTTP until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Open(); err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.SyncContent(ctx); err != nil {
		return fmt.Errorf("blog: initial sync: %w", err)
	}
	stop, err := a.startScheduler(ctx)
	if err != nil {
		return err
	}
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Shutdown failed")
		}
	}()

	log.Info().Str("addr", a.Config.Addr).Bool("admin", a.AdminEnabled()).Msg("Serving blog")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
