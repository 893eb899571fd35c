package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shortener/internal/domain"
	"shortener/internal/metrics"

	"github.com/redis/go-redis/v9"
)

// Cache holds resolved mappings in Redis so hot redirects skip the store.
// Mappings are immutable, so cached entries can never go stale; the TTL only
// bounds memory.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a Redis-backed mapping cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(shortCode string) string {
	return fmt.Sprintf("url:%s", shortCode)
}

// GetMapping retrieves a mapping from cache. Returns (nil, nil) on a miss.
func (c *Cache) GetMapping(ctx context.Context, shortCode string) (*domain.URLMapping, error) {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds())
	}()

	data, err := c.client.Get(ctx, cacheKey(shortCode)).Result()
	if err == redis.Nil {
		metrics.RecordCacheMiss()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get error: %w", err)
	}

	metrics.RecordCacheHit()

	var mapping domain.URLMapping
	if err := json.Unmarshal([]byte(data), &mapping); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached mapping: %w", err)
	}

	return &mapping, nil
}

// SetMapping stores a mapping in cache with the configured TTL.
func (c *Cache) SetMapping(ctx context.Context, mapping *domain.URLMapping) error {
	start := time.Now()
	defer func() {
		metrics.CacheOperationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds())
	}()

	data, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(mapping.ShortCode), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}

	return nil
}

// InitRedis creates a Redis client and verifies connectivity.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,

		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}
