// Package cache is a small TTL cache for filesystem probe results.
package cache

import (
	"sync"
	"time"
)

// TTLProbe is how long a probe result stays valid. Superblocks do not change
// under a read-only tool, but devices come and go.
const TTLProbe = 5 * time.Second

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Cache provides thread-safe TTL-based caching.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

// Get retrieves a value, returning nil if expired or not found.
func (c *Cache) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil
	}
	return e.value
}

// Set stores a value with the given TTL.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &entry{value: value, expiresAt: time.Now().Add(ttl)}
}

var (
	global *Cache
	once   sync.Once
)

// Global returns the shared cache instance.
func Global() *Cache {
	once.Do(func() {
		global = New()
	})
	return global
}
