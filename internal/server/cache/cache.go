// Package cache provides the response cache for read endpoints. Entries are
// keyed by catalog instance, revision and request URL, so an entry rendered
// from one catalog is never served for another, even before a flush.
package cache

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with helpers for rendered response bodies. A cache
// created with a non-positive TTL is disabled: it stores nothing.
type Cache struct {
	store    *gocache.Cache
	disabled bool
}

// Entry is a cached response.
type Entry struct {
	Status int
	Body   string
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	if defaultTTL <= 0 {
		return &Cache{store: gocache.New(gocache.NoExpiration, 0), disabled: true}
	}
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Enabled reports whether the cache stores anything.
func (c *Cache) Enabled() bool {
	return !c.disabled
}

// Key builds the cache key for a request URL against a catalog instance at
// a revision.
func Key(catalogID, revision uint64, requestURI string) string {
	return strconv.FormatUint(catalogID, 10) + ":" + strconv.FormatUint(revision, 10) + ":" + requestURI
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Response retrieves a cached response.
func (c *Cache) Response(key string) (Entry, bool) {
	v, found := c.store.Get(key)
	if !found {
		return Entry{}, false
	}
	e, ok := v.(Entry)
	return e, ok
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	if c.disabled {
		return
	}
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// SetWithTTL stores a value in the cache with custom TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	if c.disabled {
		return
	}
	c.store.Set(key, value, ttl)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats returns cache statistics.
type Stats struct {
	ItemCount int `json:"item_count"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
	}
}
