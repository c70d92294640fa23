package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

// NATSKVConfig configures the NATS JetStream key/value cache.
type NATSKVConfig struct {
	// URL of the NATS server, ignored when Conn is set
	URL string `json:"url" yaml:"url"`

	// Bucket is the KV bucket name, created if missing
	Bucket string `json:"bucket" yaml:"bucket"`

	// TTL is the bucket-level max age
	TTL time.Duration `json:"ttl" yaml:"ttl"`

	// Conn is an existing connection to reuse
	Conn *nats.Conn `json:"-" yaml:"-"`
}

// NATSKVCache is a Cache backed by a JetStream KV bucket.
type NATSKVCache struct {
	conn   *nats.Conn
	kv     nats.KeyValue
	ownsNC bool
}

const defaultNATSBucket = "reddit_cache"

// NewNATSKVCache connects to NATS and binds (or creates) the configured bucket.
func NewNATSKVCache(config *NATSKVConfig) (*NATSKVCache, error) {
	if config == nil {
		return nil, ErrNATSConfigRequired
	}

	conn := config.Conn
	ownsNC := false

	if conn == nil {
		url := config.URL
		if url == "" {
			url = nats.DefaultURL
		}

		var err error

		conn, err = nats.Connect(url)
		if err != nil {
			return nil, fmt.Errorf("connecting to NATS: %w", err)
		}

		ownsNC = true
	}

	js, err := conn.JetStream()
	if err != nil {
		if ownsNC {
			conn.Close()
		}

		return nil, fmt.Errorf("getting JetStream context: %w", err)
	}

	bucket := config.Bucket
	if bucket == "" {
		bucket = defaultNATSBucket
	}

	kv, err := js.KeyValue(bucket)
	if errors.Is(err, nats.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(&nats.KeyValueConfig{
			Bucket: bucket,
			TTL:    config.TTL,
		})
	}

	if err != nil {
		if ownsNC {
			conn.Close()
		}

		return nil, fmt.Errorf("binding KV bucket %s: %w", bucket, err)
	}

	return &NATSKVCache{conn: conn, kv: kv, ownsNC: ownsNC}, nil
}

// KV keys may not contain ':' so it is mapped to '.'.
func natsKey(key string) string {
	return strings.ReplaceAll(key, ":", ".")
}

// Get implements Cache.Get.
func (c *NATSKVCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	kve, err := c.kv.Get(natsKey(key))
	if err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}

		return nil, fmt.Errorf("getting key %s: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(kve.Value(), &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.Expired(time.Now()) {
		_ = c.kv.Delete(natsKey(key))

		return nil, fmt.Errorf("%w: %s", ErrEntryExpired, key)
	}

	return &entry, nil
}

// Set implements Cache.Set.
func (c *NATSKVCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	_, err = c.kv.Put(natsKey(key), data)
	if err != nil {
		return fmt.Errorf("putting key %s: %w", key, err)
	}

	return nil
}

// Delete implements Cache.Delete.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	err := c.kv.Delete(natsKey(key))
	if err != nil && !errors.Is(err, nats.ErrKeyNotFound) {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}

	return nil
}

// Clear implements Cache.Clear.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.kv.Keys()
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}

		return fmt.Errorf("listing keys: %w", err)
	}

	for _, key := range keys {
		err = c.kv.Purge(key)
		if err != nil {
			return fmt.Errorf("purging key %s: %w", key, err)
		}
	}

	return nil
}

// Has implements Cache.Has.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Close drains the connection if the cache opened it.
func (c *NATSKVCache) Close() error {
	if c.ownsNC {
		return c.conn.Drain()
	}

	return nil
}
