package reelsite

import (
	"testing"
	"time"
)

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, time.Hour)

	id, err := s.CreateItem(PortfolioItem{Title: "First", Category: CategoryVideo, Image: "a.jpg"})
	if err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	items, err := cache.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}

	// A store write behind the cache's back stays invisible inside the TTL.
	if _, err := s.CreateItem(PortfolioItem{Title: "Second", Category: CategoryVideo, Image: "b.jpg"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}
	items, err = cache.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("cache reloaded within TTL, got %d items", len(items))
	}

	cache.Invalidate()
	items, err = cache.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("after invalidate item count = %d, want 2", len(items))
	}

	if _, err := cache.GetItem(id); err != nil {
		t.Errorf("GetItem(%s) failed: %v", id, err)
	}
	if _, err := cache.GetItem("missing"); err != ErrNotFound {
		t.Errorf("GetItem(missing) err = %v, want ErrNotFound", err)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, 20*time.Millisecond)

	if _, err := cache.ListItems(""); err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if _, err := s.CreateItem(PortfolioItem{Title: "Late", Category: CategoryVideo, Image: "a.jpg"}); err != nil {
		t.Fatalf("CreateItem failed: %v", err)
	}

	time.Sleep(30 * time.Millisecond)

	items, err := cache.ListItems("")
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("expired cache should reload, got %d items", len(items))
	}
}

func TestCacheContentDefaults(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, time.Hour)

	content, err := cache.Content()
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}
	if content.Headline == "" || content.PortfolioTitle == "" {
		t.Errorf("empty store should render with defaults, got %+v", content)
	}
}

func TestCacheCategoryFilterKeepsOrder(t *testing.T) {
	s := setupTestStore(t)
	cache := NewContentCache(s, time.Hour)

	for _, p := range []PortfolioItem{
		{Title: "V1", Category: CategoryVideo, Image: "1.jpg"},
		{Title: "P1", Category: CategoryPhoto, Image: "2.jpg"},
		{Title: "V2", Category: CategoryVideo, Image: "3.jpg"},
	} {
		if _, err := s.CreateItem(p); err != nil {
			t.Fatalf("CreateItem failed: %v", err)
		}
	}

	videos, err := cache.ListItems(CategoryVideo)
	if err != nil {
		t.Fatalf("ListItems failed: %v", err)
	}
	if len(videos) != 2 || videos[0].Title != "V1" || videos[1].Title != "V2" {
		t.Errorf("filtered = %v, want [V1 V2] in insertion order", titles(videos))
	}
}
