package clinicfolio

import (
	"strings"
	"sync"
	"time"
)

// PostCache is an in-memory cache of published blog posts and tags with TTL.
// Every admin blog write invalidates it, so public readers see fresh data at
// most one invalidation after a change.
type PostCache struct {
	mu      sync.RWMutex
	posts   []BlogPost
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
	return c.posts != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.tags = nil
	c.mu.Unlock()
}

// ensureLoaded returns cached posts and tags after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock when a reload
// is needed.
func (c *PostCache) ensureLoaded() ([]BlogPost, []string, error) {
	c.mu.RLock()
	if c.valid() {
		posts, tags := c.posts, c.tags
		c.mu.RUnlock()
		return posts, tags, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		posts, err := c.store.ListPublishedPosts("")
		if err != nil {
			return nil, nil, err
		}
		tags, err := c.store.ListBlogTags()
		if err != nil {
			return nil, nil, err
		}
		c.posts = posts
		c.tags = tags
		c.fetched = time.Now()
	}
	return c.posts, c.tags, nil
}

// ListPosts returns published posts, filtered by tag when non-empty.
func (c *PostCache) ListPosts(tag string) ([]BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if tag == "" {
		return posts, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(tag))
	var filtered []BlogPost
	for _, p := range posts {
		for _, t := range p.Tags {
			if strings.ToLower(t) == normalized {
				filtered = append(filtered, p)
				break
			}
		}
	}
	return filtered, nil
}

// ListTags returns the deduplicated tags of all published posts.
func (c *PostCache) ListTags() ([]string, error) {
	_, tags, err := c.ensureLoaded()
	return tags, err
}

// GetPost returns a published post by slug, falling back to the store when
// the slug is not in the cached list.
func (c *PostCache) GetPost(slug string) (BlogPost, error) {
	posts, _, err := c.ensureLoaded()
	if err != nil {
		return BlogPost{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return c.store.GetPublishedPost(slug)
}
