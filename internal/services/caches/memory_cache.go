package caches

import (
	"sync"
	"sync/atomic"
	"time"
)

type memoryEntry struct {
	data        []byte
	contentType string
	expires     time.Time
}

// MemoryCache is a process-local BlobCache used when no Redis host is
// configured.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get returns cached bytes and content type for a blob name, expiring
// stale entries lazily. The expiry re-check happens under the same lock
// as the delete so a concurrent Set of the same name is never erased.
func (c *MemoryCache) Get(name string) ([]byte, string, bool) {
	c.mu.Lock()
	entry, ok := c.entries[name]
	if ok && time.Now().After(entry.expires) {
		delete(c.entries, name)
		ok = false
	}
	c.mu.Unlock()
	if !ok {
		c.misses.Add(1)
		return nil, "", false
	}
	c.hits.Add(1)
	return entry.data, entry.contentType, true
}

// Set stores blob bytes and content type with the configured TTL.
func (c *MemoryCache) Set(name string, data []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = memoryEntry{
		data:        data,
		contentType: contentType,
		expires:     time.Now().Add(c.ttl),
	}
}

// Stats reports hit and miss counts since startup.
func (c *MemoryCache) Stats() (int64, int64) {
	return c.hits.Load(), c.misses.Load()
}
