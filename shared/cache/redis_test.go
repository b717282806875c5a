package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *Redis[cachedUser]) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, NewRedis[cachedUser](client, "test", time.Minute)
}

func TestRedis_SetAndGet(t *testing.T) {
	ctx := context.Background()
	_, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "token-1", cachedUser{ID: 7, Email: "a@b.com"}, 5*time.Minute))

	got, found, err := c.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedUser{ID: 7, Email: "a@b.com"}, got)
}

func TestRedis_Miss(t *testing.T) {
	_, c := newTestRedis(t)

	_, found, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_Expires(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "token-1", cachedUser{ID: 7}, 5*time.Minute))
	mr.FastForward(5*time.Minute + time.Second)

	_, found, err := c.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedis_KeysAreHashed(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "secret-token", cachedUser{ID: 7}, time.Minute))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "test:"))
	assert.NotContains(t, keys[0], "secret-token")
}

func TestRedis_ConnectionError(t *testing.T) {
	mr, c := newTestRedis(t)
	mr.Close()

	_, found, err := c.Get(context.Background(), "token-1")
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedis_NonPositiveTTLUsesDefault(t *testing.T) {
	ctx := context.Background()
	mr, c := newTestRedis(t)

	require.NoError(t, c.Set(ctx, "token-1", cachedUser{ID: 7}, 0))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, time.Minute, mr.TTL(keys[0]))

	mr.FastForward(time.Minute + time.Second)

	_, found, err := c.Get(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, found)
}
