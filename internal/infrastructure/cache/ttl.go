// Package cache provides the in-process TTL caches shared by the analysis
// services, plus the Redis-backed verdict cache.
package cache

import (
	"sync"
	"time"
)

type ttlEntry struct {
	value     any
	expiresAt time.Time
}

// TTLCache is a mutex-guarded map with per-entry expiry. Entries expire on
// read by timestamp check; there is no background eviction. Optionally
// bounded: once the map grows past maxEntries the whole map is cleared on
// the next write.
type TTLCache struct {
	mu         sync.RWMutex
	entries    map[string]ttlEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewTTLCache creates an unbounded TTL cache.
func NewTTLCache(ttl time.Duration) *TTLCache {
	return NewBoundedTTLCache(ttl, 0)
}

// NewBoundedTTLCache creates a TTL cache that is flushed entirely once it
// exceeds maxEntries. maxEntries <= 0 means unbounded.
func NewBoundedTTLCache(ttl time.Duration, maxEntries int) *TTLCache {
	return &TTLCache{
		entries:    make(map[string]ttlEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Get returns the cached value for key, or false if absent or expired.
func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

// Set stores value under key with the cache's TTL.
func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		c.entries = make(map[string]ttlEntry)
	}
	c.entries[key] = ttlEntry{value: value, expiresAt: c.now().Add(c.ttl)}
}

// Len reports the number of entries, including expired ones not yet read.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ttlEntry)
}
