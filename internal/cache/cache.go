package cache

import (
	"sync"
	"time"
)

// Cache is the interface for the snapshot cache.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
}

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// InMemoryCache is a thread-safe in-memory cache whose entries expire after a
// fixed TTL. A non-positive TTL keeps entries until they are overwritten.
type InMemoryCache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewInMemoryCache creates a new instance of InMemoryCache.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves a value from the cache. Expired entries are reported as missing.
func (c *InMemoryCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, found := c.items[key]
	if !found {
		return nil, false
	}
	if !item.expiresAt.IsZero() && !c.now().Before(item.expiresAt) {
		return nil, false
	}
	return item.value, true
}

// Set adds a value to the cache, overwriting an existing one if present.
func (c *InMemoryCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := entry{value: value}
	if c.ttl > 0 {
		e.expiresAt = c.now().Add(c.ttl)
	}
	c.items[key] = e
}

// Nop never stores anything. It keeps every view fetching fresh data.
type Nop struct{}

func (Nop) Get(string) (interface{}, bool) { return nil, false }
func (Nop) Set(string, interface{})        {}
