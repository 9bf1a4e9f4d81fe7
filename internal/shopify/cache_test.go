package shopify

import (
	"testing"
	"time"

	"go.uber.org/goleak"

	"instock-widget/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func TestProfileCacheFresh(t *testing.T) {
	cache := newProfileCache(time.Minute)
	now := time.Now()

	if _, ok := cache.get(now); ok {
		t.Fatal("empty cache reported a hit")
	}

	graph := []model.DeliveryProfile{{ID: "1", Name: "General Profile"}}
	cache.put(graph, now)

	got, ok := cache.get(now.Add(30 * time.Second))
	if !ok {
		t.Fatal("fresh entry reported a miss")
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("got %+v", got)
	}
}

func TestProfileCacheExpiry(t *testing.T) {
	cache := newProfileCache(time.Minute)
	now := time.Now()
	cache.put([]model.DeliveryProfile{{ID: "1"}}, now)

	if _, ok := cache.get(now.Add(time.Minute)); ok {
		t.Error("entry at exactly ttl should be expired")
	}
	if _, ok := cache.get(now.Add(time.Hour)); ok {
		t.Error("old entry reported fresh")
	}

	// Expired data stays reachable for the degrade path.
	stale, ok := cache.getStale()
	if !ok {
		t.Fatal("stale entry unavailable")
	}
	if len(stale) != 1 || stale[0].ID != "1" {
		t.Errorf("stale = %+v", stale)
	}
}

func TestProfileCacheStaleEmpty(t *testing.T) {
	cache := newProfileCache(time.Minute)
	if _, ok := cache.getStale(); ok {
		t.Error("empty cache returned stale data")
	}
}

func TestProfileCacheStats(t *testing.T) {
	cache := newProfileCache(time.Minute)
	now := time.Now()

	cache.get(now) // miss
	cache.put([]model.DeliveryProfile{}, now)
	cache.get(now.Add(time.Second)) // hit
	cache.get(now.Add(time.Second)) // hit

	hits, misses := cache.stats()
	if hits != 2 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 2/1", hits, misses)
	}
}

func TestProfileCacheDefaultTTL(t *testing.T) {
	cache := newProfileCache(0)
	if cache.ttl != DefaultProfileTTL {
		t.Errorf("ttl = %v, want %v", cache.ttl, DefaultProfileTTL)
	}

	cache = newProfileCache(-time.Second)
	if cache.ttl != DefaultProfileTTL {
		t.Errorf("ttl = %v, want %v", cache.ttl, DefaultProfileTTL)
	}
}

// An empty graph is still a valid cached value; a store with no custom
// shipping setup should not refetch on every request.
func TestProfileCacheEmptyGraphIsCached(t *testing.T) {
	cache := newProfileCache(time.Minute)
	now := time.Now()
	cache.put(nil, now)

	got, ok := cache.get(now.Add(time.Second))
	if !ok {
		t.Fatal("cached nil graph reported a miss")
	}
	if got != nil {
		t.Errorf("got %+v, want nil", got)
	}
}
