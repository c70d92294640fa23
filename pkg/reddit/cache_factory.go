package reddit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fivetwenty-io/reddit-client/internal/constants"
)

// CacheType names a cache backend.
type CacheType string

const (
	CacheTypeMemory CacheType = "memory"
	CacheTypeNATS   CacheType = "nats"
	CacheTypeRedis  CacheType = "redis"
	CacheTypeNone   CacheType = "none"
)

// CacheConfig selects and configures the backend used for cacheable
// responses such as the scope catalogue.
type CacheConfig struct {
	Type CacheType `json:"type" yaml:"type"`

	Memory *MemoryCacheConfig `json:"memory,omitempty" yaml:"memory,omitempty"`
	NATS   *NATSKVConfig      `json:"nats,omitempty"   yaml:"nats,omitempty"`
	Redis  *RedisCacheConfig  `json:"redis,omitempty"  yaml:"redis,omitempty"`

	// Local keeps a small in-process copy in front of a shared backend.
	Local bool `json:"local,omitempty" yaml:"local,omitempty"`

	// Options applies to every backend. Nil means DefaultCacheOptions().
	Options *CacheOptions `json:"-" yaml:"-"`
}

// MemoryCacheConfig configures the in-process cache.
type MemoryCacheConfig struct {
	MaxSize int `json:"max_size" yaml:"max_size"`
}

// DefaultCacheConfig returns an in-process cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type:    CacheTypeMemory,
		Memory:  &MemoryCacheConfig{MaxSize: constants.DefaultCacheSize},
		Options: DefaultCacheOptions(),
	}
}

type cacheConstructor func(config *CacheConfig) (Cache, error)

var cacheBackends = map[CacheType]cacheConstructor{
	CacheTypeMemory: func(config *CacheConfig) (Cache, error) {
		return newMemoryCacheFromConfig(config.Memory), nil
	},
	CacheTypeNone: func(*CacheConfig) (Cache, error) {
		return NoOpCache{}, nil
	},
	CacheTypeNATS: func(config *CacheConfig) (Cache, error) {
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		return NewNATSKVCache(config.NATS)
	},
	CacheTypeRedis: func(config *CacheConfig) (Cache, error) {
		if config.Redis == nil {
			return nil, ErrRedisConfigRequired
		}

		return NewRedisCache(config.Redis)
	},
}

// NewCacheFromConfig creates the configured backend. A nil config or an empty
// type yields a memory cache.
func NewCacheFromConfig(config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	cacheType := config.Type
	if cacheType == "" {
		cacheType = CacheTypeMemory
	}

	construct, ok := cacheBackends[cacheType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}

	cache, err := construct(config)
	if err != nil {
		return nil, err
	}

	if config.Local && (cacheType == CacheTypeNATS || cacheType == CacheTypeRedis) {
		return NewTieredCache(newMemoryCacheFromConfig(config.Memory), cache), nil
	}

	return cache, nil
}

func newMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil {
		return NewMemoryCache(constants.DefaultCacheSize)
	}

	return NewMemoryCache(config.MaxSize)
}

// NoOpCache stores nothing.
type NoOpCache struct{}

func (NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

func (NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error { return nil }

func (NoOpCache) Delete(ctx context.Context, key string) error { return nil }

func (NoOpCache) Clear(ctx context.Context) error { return nil }

func (NoOpCache) Has(ctx context.Context, key string) bool { return false }

// TieredCache reads through a near cache to a far one. A far hit is copied
// into the near cache; writes and deletes go to both.
type TieredCache struct {
	near Cache
	far  Cache
}

// NewTieredCache layers near in front of far.
func NewTieredCache(near, far Cache) *TieredCache {
	return &TieredCache{near: near, far: far}
}

// Get implements Cache.Get.
func (t *TieredCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	if entry, err := t.near.Get(ctx, key); err == nil {
		return entry, nil
	}

	entry, err := t.far.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	_ = t.near.Set(ctx, key, entry)

	return entry, nil
}

// Set implements Cache.Set.
func (t *TieredCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return errors.Join(t.near.Set(ctx, key, entry), t.far.Set(ctx, key, entry))
}

// Delete implements Cache.Delete.
func (t *TieredCache) Delete(ctx context.Context, key string) error {
	return errors.Join(t.near.Delete(ctx, key), t.far.Delete(ctx, key))
}

// Clear implements Cache.Clear.
func (t *TieredCache) Clear(ctx context.Context) error {
	return errors.Join(t.near.Clear(ctx), t.far.Clear(ctx))
}

// Has implements Cache.Has.
func (t *TieredCache) Has(ctx context.Context, key string) bool {
	return t.near.Has(ctx, key) || t.far.Has(ctx, key)
}

// Close releases the far cache connection.
func (t *TieredCache) Close() error {
	if closer, ok := t.far.(io.Closer); ok {
		return closer.Close()
	}

	return nil
}
