package shows

import (
	"sync"
	"time"
)

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// Cache is a small in-memory TTL store keyed by resolved upstream URL.
// A miss is never an error, only a fallback to the network path. Expired
// entries are evicted lazily on lookup; nothing sweeps the map proactively,
// so unexpired unused keys persist for the process lifetime.
//
// Instances are constructed explicitly and injected into the client so
// tests get isolation via a fresh cache per test.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the stored payload for key, or reports a miss when the key is
// unknown or expired. An expired entry is deleted as a side effect.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key for ttl. A fresh write always overwrites the
// previous entry; negative TTLs are clamped to zero.
func (c *Cache) Set(key string, value []byte, ttl time.Duration) {
	if ttl < 0 {
		ttl = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(ttl),
	}
}

// Len reports the number of live entries, expired ones included until their
// next lookup.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
