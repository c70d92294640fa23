package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCacheConfig configures the Redis cache.
type RedisCacheConfig struct {
	Addr      string `json:"addr"       yaml:"addr"`
	Password  string `json:"password"   yaml:"password"`
	DB        int    `json:"db"         yaml:"db"`
	KeyPrefix string `json:"key_prefix" yaml:"key_prefix"`

	// Client is an existing client to reuse
	Client redis.UniversalClient `json:"-" yaml:"-"`
}

// RedisCache is a Cache backed by Redis. Entry expiry maps onto key TTLs.
type RedisCache struct {
	client     redis.UniversalClient
	prefix     string
	ownsClient bool
}

const (
	defaultRedisPrefix = "reddit:"
	redisScanCount     = 100
	redisPingTimeout   = 5 * time.Second
)

// NewRedisCache creates a Redis-backed cache and verifies connectivity.
func NewRedisCache(config *RedisCacheConfig) (*RedisCache, error) {
	if config == nil {
		return nil, ErrRedisConfigRequired
	}

	client := config.Client
	ownsClient := false

	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		})
		ownsClient = true
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()

	err := client.Ping(ctx).Err()
	if err != nil {
		if ownsClient {
			_ = client.Close()
		}

		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &RedisCache{client: client, prefix: prefix, ownsClient: ownsClient}, nil
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting key %s: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(val, &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		return nil, fmt.Errorf("%w: %s", ErrEntryExpired, key)
	}

	return &entry, nil
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	var ttl time.Duration
	if !entry.ExpiresAt.IsZero() {
		ttl = time.Until(entry.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	err = c.client.Set(ctx, c.prefix+key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("setting key %s: %w", key, err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.prefix+key).Err()
	if err != nil {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}

	return nil
}

// Clear removes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()

	for iter.Next(ctx) {
		err := c.client.Del(ctx, iter.Val()).Err()
		if err != nil {
			return fmt.Errorf("deleting key %s: %w", iter.Val(), err)
		}
	}

	err := iter.Err()
	if err != nil {
		return fmt.Errorf("scanning keys: %w", err)
	}

	return nil
}

// Has implements Cache.Has.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, c.prefix+key).Result()

	return err == nil && n > 0
}

// Close closes the client if the cache created it.
func (c *RedisCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}

	return nil
}
