package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zeebo/blake3"
)

const DefaultKeyPrefix = "identity"

// Redis is a TTL cache stored in Redis with JSON-encoded values.
// Keys are hashed before use so raw credentials never reach the Redis keyspace.
type Redis[V any] struct {
	client     redis.Cmdable
	keyPrefix  string
	defaultTTL time.Duration
}

// NewRedis creates a Redis-backed cache on top of client. defaultTTL applies to
// entries set without a positive TTL.
func NewRedis[V any](client redis.Cmdable, keyPrefix string, defaultTTL time.Duration) *Redis[V] {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	return &Redis[V]{
		client:     client,
		keyPrefix:  keyPrefix,
		defaultTTL: defaultTTL,
	}
}

// NewRedisFromURL parses a redis:// URL and creates a cache backed by a new client.
func NewRedisFromURL[V any](url, keyPrefix string, defaultTTL time.Duration) (*Redis[V], *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	return NewRedis[V](client, keyPrefix, defaultTTL), client, nil
}

func (c *Redis[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V

	data, err := c.client.Get(ctx, c.hashedKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return zero, false, nil
		}
		return zero, false, err
	}

	var value V
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, false, fmt.Errorf("failed to decode cached value: %w", err)
	}

	return value, true, nil
}

// Set stores value for ttl, or for the default TTL when ttl is not positive.
// Entries never outlive their TTL.
func (c *Redis[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	return c.client.Set(ctx, c.hashedKey(key), data, ttl).Err()
}

func (c *Redis[V]) hashedKey(key string) string {
	sum := blake3.Sum256([]byte(key))
	return c.keyPrefix + ":" + hex.EncodeToString(sum[:])
}
