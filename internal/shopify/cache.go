package shopify

import (
	"sync"
	"time"

	"go.uber.org/atomic"

	"instock-widget/internal/model"
)

// DefaultProfileTTL is how long a fetched delivery graph stays fresh.
// Merchants edit shipping settings rarely next to storefront reads, so a
// short TTL removes most of the second upstream round trip per request.
const DefaultProfileTTL = 5 * time.Minute

// profileCache holds the store's last fetched delivery graph.
//
// One store means one graph, so this is a single-slot cache rather than a
// keyed one. Expired data stays retrievable through getStale for the degrade
// path: capability badges from a stale graph beat no badges at all.
type profileCache struct {
	mu        sync.RWMutex
	profiles  []model.DeliveryProfile
	fetchedAt time.Time
	ttl       time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func newProfileCache(ttl time.Duration) *profileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &profileCache{ttl: ttl}
}

// get returns the cached graph while it is fresh.
func (c *profileCache) get(now time.Time) ([]model.DeliveryProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fetchedAt.IsZero() || now.Sub(c.fetchedAt) >= c.ttl {
		c.misses.Inc()
		return nil, false
	}
	c.hits.Inc()
	return c.profiles, true
}

// getStale returns whatever graph was last stored, regardless of age.
func (c *profileCache) getStale() ([]model.DeliveryProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.fetchedAt.IsZero() {
		return nil, false
	}
	return c.profiles, true
}

func (c *profileCache) put(profiles []model.DeliveryProfile, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profiles = profiles
	c.fetchedAt = now
}

// stats returns cumulative hit/miss counters.
func (c *profileCache) stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
