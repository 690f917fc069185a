package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache is a thin JSON-over-Redis read cache. A nil *Cache is valid and
// behaves as an always-miss cache, so the application runs without Redis.
type Cache struct {
	rdb *redis.Client // Underlying Redis client
}

// NewCache wraps a Redis client; a nil client yields a nil (disabled) cache
func NewCache(rdb *redis.Client) *Cache {
	if rdb == nil {
		return nil // Cache disabled
	}
	return &Cache{rdb: rdb}
}

// Get retrieves a value and unmarshals it into dest; found reports a cache hit
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil {
		return false, nil // Cache disabled
	}
	val, err := c.rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// Set stores a value under key with the given TTL
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if c == nil {
		return nil // Cache disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return c.rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// Delete removes a key, used to invalidate after a write
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil {
		return nil // Cache disabled
	}
	return c.rdb.Del(ctx, key).Err() // Delete key from Redis
}
