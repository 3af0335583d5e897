package caches

import (
	"log"
	"sync/atomic"
	"time"

	"image-service/internal/storage"
)

// RedisCache caches blob bytes in Redis so repeated reads of the same
// upload skip the object store.
type RedisCache struct {
	client *storage.RedisClient
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCache wraps a connected Redis client.
func NewRedisCache(client *storage.RedisClient, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) dataKey(name string) string {
	return "blob:" + name
}

func (c *RedisCache) typeKey(name string) string {
	return "blobct:" + name
}

// Get returns cached bytes and content type for a blob name. Redis errors
// count as misses; the caller falls back to the object store either way.
func (c *RedisCache) Get(name string) ([]byte, string, bool) {
	data, err := c.client.GetBytes(c.dataKey(name))
	if err != nil {
		log.Printf("Redis cache get failed for %s: %v", name, err)
		c.misses.Add(1)
		return nil, "", false
	}
	if data == nil {
		c.misses.Add(1)
		return nil, "", false
	}
	contentType, err := c.client.GetBytes(c.typeKey(name))
	if err != nil {
		log.Printf("Redis cache get failed for %s content type: %v", name, err)
	}
	c.hits.Add(1)
	return data, string(contentType), true
}

// Set stores blob bytes and content type with the configured TTL. Failures
// are logged and ignored; the cache is best effort.
func (c *RedisCache) Set(name string, data []byte, contentType string) {
	if err := c.client.SetBytes(c.dataKey(name), data, c.ttl); err != nil {
		log.Printf("Redis cache set failed for %s: %v", name, err)
		return
	}
	if err := c.client.SetBytes(c.typeKey(name), []byte(contentType), c.ttl); err != nil {
		log.Printf("Redis cache set failed for %s content type: %v", name, err)
	}
}

// Stats reports hit and miss counts since startup.
func (c *RedisCache) Stats() (int64, int64) {
	return c.hits.Load(), c.misses.Load()
}
