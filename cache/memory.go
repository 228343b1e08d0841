package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// defaultSize bounds the in-memory cache; a full mod translation rarely
// exceeds a few thousand distinct strings.
const defaultSize = 65536

// MemoryCache is a thread-safe in-memory translation cache with LRU
// eviction and optional TTL.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

// NewMemoryCache creates an in-memory cache holding up to size entries.
// If ttlSeconds is 0 or negative, entries never expire. A non-positive
// size falls back to a generous default.
func NewMemoryCache(size, ttlSeconds int) *MemoryCache {
	if size <= 0 {
		size = defaultSize
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	if ttlSeconds <= 0 {
		ttl = 0
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, string](size, nil, ttl),
	}
}

// Get retrieves a cached translation. Returns false if the key is absent
// or expired.
func (c *MemoryCache) Get(key string) (string, bool) {
	return c.lru.Get(key)
}

// Set stores a translation.
func (c *MemoryCache) Set(key, value string) error {
	c.lru.Add(key, value)
	return nil
}

// Len returns the number of live entries.
func (c *MemoryCache) Len() int {
	return c.lru.Len()
}

// Keys returns all live keys.
func (c *MemoryCache) Keys() []string {
	return c.lru.Keys()
}

// Clear removes all entries.
func (c *MemoryCache) Clear() {
	c.lru.Purge()
}

var _ ExportableCache = (*MemoryCache)(nil)
