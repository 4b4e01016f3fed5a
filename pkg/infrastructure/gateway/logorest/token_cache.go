package logorest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenCache keeps the bearer token between requests
type TokenCache interface {
	// Get returns "" when no live token is cached.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, token string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisTokenCache shares the token across server instances
type RedisTokenCache struct {
	rdb *redis.Client
}

func NewRedisTokenCache(rdb *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{rdb: rdb}
}

func (c *RedisTokenCache) Get(ctx context.Context, key string) (string, error) {
	token, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (c *RedisTokenCache) Set(ctx context.Context, key, token string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, token, ttl).Err()
}

func (c *RedisTokenCache) Delete(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// MemoryTokenCache keeps the token in process
type MemoryTokenCache struct {
	mu      sync.RWMutex
	entries map[string]cachedToken
	now     func() time.Time
}

type cachedToken struct {
	token   string
	expires time.Time
}

func NewMemoryTokenCache() *MemoryTokenCache {
	return &MemoryTokenCache{
		entries: make(map[string]cachedToken),
		now:     time.Now,
	}
}

func (c *MemoryTokenCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || !c.now().Before(entry.expires) {
		return "", nil
	}
	return entry.token, nil
}

func (c *MemoryTokenCache) Set(_ context.Context, key, token string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedToken{token: token, expires: c.now().Add(ttl)}
	return nil
}

func (c *MemoryTokenCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
