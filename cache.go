package blog

import (
	"context"
	"sync"
	"time"

	"github.com/copydataai/blog/posts"
)

// PostCache is an in-memory snapshot of the visible posts with a TTL. It holds
// the output of posts.SortedPosts so listings never see drafts.
type PostCache struct {
	mu      sync.RWMutex
	sorted  []posts.Post
	tags    []string
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.sorted != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.sorted = nil
	c.tags = nil
	c.mu.Unlock()
}

func (c *PostCache) load(ctx context.Context) error {
	if c.valid() {
		return nil
	}
	all, err := c.store.ListAllPosts(ctx)
	if err != nil {
		return err
	}
	c.sorted = posts.SortedPosts(all)
	c.tags = posts.UniqueTags(c.sorted)
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) ensureLoaded(ctx context.Context) ([]posts.Post, []string, error) {
	c.mu.RLock()
	if c.valid() {
		sorted, tags := c.sorted, c.tags
		c.mu.RUnlock()
		return sorted, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return nil, nil, err
	}
	return c.sorted, c.tags, nil
}

// SortedPosts returns the visible posts, newest first.
func (c *PostCache) SortedPosts(ctx context.Context) ([]posts.Post, error) {
	sorted, _, err := c.ensureLoaded(ctx)
	return sorted, err
}

// PostsByTag returns the visible posts carrying tag, newest first.
func (c *PostCache) PostsByTag(ctx context.Context, tag string) ([]posts.Post, error) {
	sorted, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return nil, err
	}
	return posts.PostsByTag(sorted, tag), nil
}

// Tags returns every slugified tag used by a visible post.
func (c *PostCache) Tags(ctx context.Context) ([]string, error) {
	_, tags, err := c.ensureLoaded(ctx)
	return tags, err
}

// GetPost returns a visible post by slug.
func (c *PostCache) GetPost(ctx context.Context, slug string) (posts.Post, error) {
	sorted, _, err := c.ensureLoaded(ctx)
	if err != nil {
		return posts.Post{}, err
	}
	for _, p := range sorted {
		if p.Slug == slug {
			return p, nil
		}
	}
	return posts.Post{}, ErrNotFound
}
