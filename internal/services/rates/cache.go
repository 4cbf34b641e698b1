package rates

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCacheTTL is how long a fetched pair rate stays usable.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	rate       decimal.Decimal
	observedAt time.Time
}

// MemoryCache is an in-process pair cache. Entries are never evicted;
// staleness is judged lazily at read time against the TTL.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, pair string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[pair]
	if !ok {
		return decimal.Zero, false
	}
	if c.now().Sub(entry.observedAt) >= c.ttl {
		// Stale reads as absent; the entry stays until overwritten.
		return decimal.Zero, false
	}
	return entry.rate, true
}

func (c *MemoryCache) Set(_ context.Context, pair string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[pair] = cacheEntry{rate: rate, observedAt: c.now()}
}
