package blog

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/copydataai/blog/content"
)

// SyncResult summarises one content sync.
type SyncResult struct {
	Loaded int
	Drafts int
	Failed error // joined per-file errors; the valid posts were still stored
}

// SyncContent loads the content directory, replaces the stored snapshot and
// invalidates the cache. Individual broken files are logged and reported in
// SyncResult.Failed; only directory or storage failures return an error.
func (a *App) SyncContent(ctx context.Context) (SyncResult, error) {
	loader := content.Loader{
		Dir:           a.Config.ContentDir,
		DefaultAuthor: a.Config.Site.Author,
		Location:      a.Config.Location(),
	}
	loaded, loadErr := loader.Load(ctx)
	if loaded == nil && loadErr != nil {
		return SyncResult{}, fmt.Errorf("load content: %w", loadErr)
	}
	if loadErr != nil {
		log.Warn().Err(loadErr).Str("dir", a.Config.ContentDir).Msg("Some posts could not be loaded")
	}

	if err := a.Store.ReplaceAll(ctx, loaded); err != nil {
		return SyncResult{}, fmt.Errorf("store content: %w", err)
	}
	a.Cache.Invalidate()

	res := SyncResult{Loaded: len(loaded), Failed: loadErr}
	for _, p := range loaded {
		if p.Draft {
			res.Drafts++
		}
	}
	log.Info().Int("posts", res.Loaded).Int("drafts", res.Drafts).Msg("Content synced")
	return res, nil
}

// startScheduler runs SyncContent on the configured cron schedule. The
// returned function stops the scheduler and waits for a running sync.
func (a *App) startScheduler(ctx context.Context) (func(), error) {
	if a.Config.SyncSchedule == "" {
		return func() {}, nil
	}
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	if _, err := c.AddFunc(a.Config.SyncSchedule, func() {
		if _, err := a.SyncContent(ctx); err != nil {
			log.Error().Err(err).Msg("Scheduled content sync failed")
		}
	}); err != nil {
		return nil, fmt.Errorf("sync schedule %q: %w", a.Config.SyncSchedule, err)
	}
	c.Start()
	log.Info().Str("schedule", a.Config.SyncSchedule).Msg("Content sync scheduled")
	return func() { <-c.Stop().Done() }, nil
}
