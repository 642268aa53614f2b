package tracker

import (
	"sync"
	"time"

	"github.com/julianstephens/streakline/internal/streak"
)

type cacheKey struct {
	goalID string
	zone   string
}

type cacheEntry struct {
	result     streak.Result
	computedAt time.Time
	// invalid entries are kept as the last known value but never served fresh.
	invalid bool
}

// Cache holds computed results per (goal, time zone). Entries expire after
// ttl and are invalidated by goal when new events arrive. Each goal carries a
// generation counter so a computation that started before an invalidation
// cannot overwrite the cache afterwards.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu          sync.Mutex
	entries     map[cacheKey]cacheEntry
	generations map[string]uint64
}

// NewCache returns a cache; a ttl of zero means results are never served fresh.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		ttl:         ttl,
		now:         now,
		entries:     make(map[cacheKey]cacheEntry),
		generations: make(map[string]uint64),
	}
}

// Get returns the entry for the key and whether it may be served without refetching.
func (c *Cache) Get(goalID, zone string) (entry cacheEntry, fresh, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok = c.entries[cacheKey{goalID, zone}]
	if !ok {
		return cacheEntry{}, false, false
	}
	fresh = !entry.invalid && c.ttl > 0 && c.now().Sub(entry.computedAt) < c.ttl
	return entry, fresh, true
}

// Generation returns the goal's current generation. Pass it to Put.
func (c *Cache) Generation(goalID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[goalID]
}

// Put stores a result computed under generation gen. It reports false and
// stores nothing if the goal was invalidated since.
func (c *Cache) Put(goalID, zone string, gen uint64, result streak.Result, computedAt time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[goalID] != gen {
		return false
	}
	c.entries[cacheKey{goalID, zone}] = cacheEntry{result: result, computedAt: computedAt}
	return true
}

// Invalidate marks every entry for the goal as out of date, in all zones.
func (c *Cache) Invalidate(goalID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generations[goalID]++
	for k, e := range c.entries {
		if k.goalID == goalID {
			e.invalid = true
			c.entries[k] = e
		}
	}
}
