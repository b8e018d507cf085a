package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// Cache is a small JSON cache over Redis used by the public read
// endpoints. Every method is best-effort: a Redis outage degrades to
// uncached reads instead of failing the request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client) *Cache {
	return &Cache{client: client, ttl: defaultTTL}
}

// NewDisabled returns a cache that always misses. Used in tests and
// when Redis is not configured.
func NewDisabled() *Cache {
	return &Cache{}
}

// GetJSON reports whether key was present and unmarshalled into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		log.Printf("[cache] get %s: %v", key, err)
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		log.Printf("[cache] decode %s: %v", key, err)
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, value any) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		log.Printf("[cache] encode %s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		log.Printf("[cache] set %s: %v", key, err)
	}
}

// Invalidate drops the given keys after an admin write.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[cache] del %v: %v", keys, err)
	}
}
