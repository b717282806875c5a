package cache

import (
	"context"
	"errors"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultCapacity = 10_000
	DefaultShards   = 16
	DefaultTTL      = 5 * time.Minute
)

var ErrTTLExceedsDefault = errors.New("entry ttl exceeds the cache default ttl")

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is an in-process TTL cache. Keys are spread over independent shards so that
// writers for one key never block readers of keys on other shards.
//
// Each shard is a bounded expirable LRU whose lifetime is the cache's default TTL, so a
// per-entry TTL can shorten an entry's life but never extend it. Set rejects longer TTLs.
type Memory[V any] struct {
	shards     []*expirable.LRU[string, memoryEntry[V]]
	defaultTTL time.Duration
}

// NewMemory creates a cache holding about capacity entries spread over shards shards.
func NewMemory[V any](capacity, shards int, defaultTTL time.Duration) *Memory[V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if shards <= 0 {
		shards = DefaultShards
	}
	if shards > capacity {
		shards = capacity
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}

	perShard := (capacity + shards - 1) / shards

	m := &Memory[V]{
		shards:     make([]*expirable.LRU[string, memoryEntry[V]], shards),
		defaultTTL: defaultTTL,
	}
	for i := range m.shards {
		m.shards[i] = expirable.NewLRU[string, memoryEntry[V]](perShard, nil, defaultTTL)
	}

	return m
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, bool, error) {
	var zero V

	entry, ok := m.shard(key).Get(key)
	if !ok || !time.Now().Before(entry.expiresAt) {
		return zero, false, nil
	}

	return entry.value, true, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	if ttl > m.defaultTTL {
		return ErrTTLExceedsDefault
	}

	m.shard(key).Add(key, memoryEntry[V]{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	})

	return nil
}

// Len reports the number of live entries across all shards.
func (m *Memory[V]) Len() int {
	n := 0
	for _, s := range m.shards {
		n += s.Len()
	}
	return n
}

func (m *Memory[V]) shard(key string) *expirable.LRU[string, memoryEntry[V]] {
	return m.shards[xxhash.Sum64String(key)%uint64(len(m.shards))]
}
