package cache

import (
	"testing"
	"time"

	"github.com/lborres/tasuku/core"
)

func testSession(id string) *core.Session {
	return &core.Session{
		ID:        id,
		UserID:    "user456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}
}

func TestInMemoryCacheGetSetShouldStoreAndRetrieve(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{
		TTL:     5 * time.Minute,
		MaxSize: 500,
	})

	session := testSession("session123")

	if err := cache.Set(session.ID, session); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	retrieved, err := cache.Get(session.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if retrieved.ID != session.ID {
		t.Errorf("Expected ID %s, got %s", session.ID, retrieved.ID)
	}
	if retrieved.UserID != session.UserID {
		t.Errorf("Expected UserID %s, got %s", session.UserID, retrieved.UserID)
	}
}

func TestInMemoryCacheGetNonExistentShouldReturnErrCacheNotFound(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{
		TTL:     5 * time.Minute,
		MaxSize: 500,
	})

	if _, err := cache.Get("nonexistent"); err != core.ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound, got %v", err)
	}
}

func TestInMemoryCacheExpiryShouldExpireEntriesAfterTTL(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{
		TTL:     50 * time.Millisecond,
		MaxSize: 500,
	})

	session := testSession("session123")
	if err := cache.Set(session.ID, session); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(80 * time.Millisecond)

	if _, err := cache.Get(session.ID); err != core.ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after TTL, got %v", err)
	}
}

func TestInMemoryCacheDeleteShouldRemoveEntry(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{})

	session := testSession("session123")
	_ = cache.Set(session.ID, session)

	if err := cache.Delete(session.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(session.ID); err != core.ErrCacheNotFound {
		t.Errorf("Expected ErrCacheNotFound after delete, got %v", err)
	}
}

func TestInMemoryCacheClearShouldRemoveAllEntries(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{})

	_ = cache.Set("a", testSession("a"))
	_ = cache.Set("b", testSession("b"))

	if err := cache.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if cache.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", cache.Len())
	}
}

func TestInMemoryCacheEvictionShouldRespectMaxSize(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{
		TTL:     5 * time.Minute,
		MaxSize: 2,
	})

	_ = cache.Set("a", testSession("a"))
	_ = cache.Set("b", testSession("b"))
	_ = cache.Set("c", testSession("c"))

	if cache.Len() > 2 {
		t.Errorf("Expected at most 2 entries, got %d", cache.Len())
	}
	if cache.Stats().Evictions == 0 {
		t.Error("Expected at least one eviction")
	}
}

func TestInMemoryCacheStatsShouldTrackHitsAndMisses(t *testing.T) {
	cache := NewInMemoryCache(core.CacheConfig{})

	_ = cache.Set("a", testSession("a"))
	_, _ = cache.Get("a")
	_, _ = cache.Get("missing")

	stats := cache.Stats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
	if stats.Sets != 1 {
		t.Errorf("Expected 1 set, got %d", stats.Sets)
	}
}
