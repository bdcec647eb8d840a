// Package cache holds rendered page data between requests. Catalog
// mutations invalidate the paths they affect, mirroring how the storefront
// and admin listings are revalidated after every write.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

type PathCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func NewPathCache(ttl time.Duration) *PathCache {
	return &PathCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (c *PathCache) Get(path string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[path]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *PathCache) Set(path string, value interface{}) {
	c.mu.Lock()
	c.entries[path] = entry{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops the given paths. Unknown paths are ignored so mutation
// code can invalidate unconditionally.
func (c *PathCache) Invalidate(paths ...string) {
	c.mu.Lock()
	for _, p := range paths {
		delete(c.entries, p)
	}
	c.mu.Unlock()
}

func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
