package reelsite

import (
	"sync"
	"time"
)

// ContentCache is an in-memory snapshot of the public site content with TTL.
// Admin writes invalidate it so the next page load re-reads the store.
type ContentCache struct {
	mu      sync.RWMutex
	items   []PortfolioItem
	content SiteContent
	skills  []Skill
	exps    []Experience
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return !c.fetched.IsZero() && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.fetched = time.Time{}
	c.items = nil
	c.skills = nil
	c.exps = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	items, err := c.store.ListItems("")
	if err != nil {
		return err
	}
	content, err := c.store.GetContent()
	if err != nil {
		return err
	}
	skills, err := c.store.ListSkills()
	if err != nil {
		return err
	}
	exps, err := c.store.ListExperiences()
	if err != nil {
		return err
	}
	c.items = items
	c.content = content
	c.skills = skills
	c.exps = exps
	c.fetched = time.Now()
	return nil
}

type snapshot struct {
	items   []PortfolioItem
	content SiteContent
	skills  []Skill
	exps    []Experience
}

// ensureLoaded returns the cached snapshot after ensuring it is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) ensureLoaded() (snapshot, error) {
	c.mu.RLock()
	if c.valid() {
		snap := snapshot{c.items, c.content, c.skills, c.exps}
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid() {
		if err := c.load(); err != nil {
			return snapshot{}, err
		}
	}
	return snapshot{c.items, c.content, c.skills, c.exps}, nil
}

// ListItems returns portfolio items, optionally filtered by exact category.
// The filter preserves stored order and never re-sorts.
func (c *ContentCache) ListItems(category string) ([]PortfolioItem, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if category == "" {
		return snap.items, nil
	}
	var filtered []PortfolioItem
	for _, p := range snap.items {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// GetItem returns a single portfolio item by id from the cache.
func (c *ContentCache) GetItem(id string) (PortfolioItem, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return PortfolioItem{}, err
	}
	for _, p := range snap.items {
		if p.ID == id {
			return p, nil
		}
	}
	return PortfolioItem{}, ErrNotFound
}

// Content returns the site-content singleton with render defaults applied.
func (c *ContentCache) Content() (SiteContent, error) {
	snap, err := c.ensureLoaded()
	if err != nil {
		return SiteContent{}, err
	}
	return snap.content.WithDefaults(), nil
}

// ListSkills returns all skills.
func (c *ContentCache) ListSkills() ([]Skill, error) {
	snap, err := c.ensureLoaded()
	return snap.skills, err
}

// ListExperiences returns all experiences.
func (c *ContentCache) ListExperiences() ([]Experience, error) {
	snap, err := c.ensureLoaded()
	return snap.exps, err
}
