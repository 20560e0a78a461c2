package secrets

import (
	"sync"
	"time"
)

// CacheConfig configures the Manager's lookup cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
	MaxSize int
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// Cache holds resolved secrets for a TTL.
type Cache struct {
	config  CacheConfig
	now     func() time.Time
	mu      sync.RWMutex
	entries map[Key]cacheEntry
}

// NewCache creates a cache using the wall clock.
func NewCache(config CacheConfig) *Cache {
	return &Cache{
		config:  config,
		now:     time.Now,
		entries: make(map[Key]cacheEntry),
	}
}

// Get returns the cached value for key if present and not expired.
func (c *Cache) Get(key Key) (string, bool) {
	if !c.config.Enabled {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || c.now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

// Set stores value for key. When the cache is full the entry closest to
// expiry is evicted.
func (c *Cache) Set(key Key, value string) {
	if !c.config.Enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && c.config.MaxSize > 0 && len(c.entries) >= c.config.MaxSize {
		var oldest Key
		var oldestAt time.Time
		first := true
		for k, e := range c.entries {
			if first || e.expiresAt.Before(oldestAt) {
				oldest, oldestAt, first = k, e.expiresAt, false
			}
		}
		delete(c.entries, oldest)
	}

	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.config.TTL)}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Key]cacheEntry)
}

// Size returns the number of cached entries, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
