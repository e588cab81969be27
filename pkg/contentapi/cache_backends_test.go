package contentapi_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseCache runs the behaviour every backend must share.
func exerciseCache(t *testing.T, cache contentapi.Cache) {
	t.Helper()

	ctx := context.Background()
	key := "contentapi.test-" + uuid.NewString()

	_, err := cache.Get(ctx, key)
	require.ErrorIs(t, err, contentapi.ErrKeyNotFound)

	entry := &contentapi.CacheEntry{
		Data:       []byte(`<response status="ok"/>`),
		StatusCode: 200,
		ExpiresAt:  time.Now().Add(time.Minute),
	}

	require.NoError(t, cache.Set(ctx, key, entry))
	assert.True(t, cache.Has(ctx, key))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.Equal(t, 200, got.StatusCode)

	require.NoError(t, cache.Delete(ctx, key))
	assert.False(t, cache.Has(ctx, key))

	require.NoError(t, cache.Set(ctx, key, entry))
	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, key))
}

func TestNATSKVCache(t *testing.T) {
	t.Parallel()

	url := os.Getenv("CONTENTAPI_TEST_NATS_URL")
	if url == "" {
		t.Skip("CONTENTAPI_TEST_NATS_URL not set")
	}

	cache, err := contentapi.NewNATSKVCache(context.Background(), &contentapi.NATSKVConfig{
		URL:    url,
		Bucket: "contentapi-test",
	})
	require.NoError(t, err)
	t.Cleanup(cache.Close)

	exerciseCache(t, cache)
}

func TestRedisCache(t *testing.T) {
	t.Parallel()

	addr := os.Getenv("CONTENTAPI_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CONTENTAPI_TEST_REDIS_ADDR not set")
	}

	cache, err := contentapi.NewRedisCache(context.Background(), &contentapi.RedisCacheConfig{
		Addr:      addr,
		KeyPrefix: "contentapi.test-",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })

	exerciseCache(t, cache)
}

func TestRedisCache_KeyPrefix(t *testing.T) {
	t.Parallel()

	addr := os.Getenv("CONTENTAPI_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CONTENTAPI_TEST_REDIS_ADDR not set")
	}

	ctx := context.Background()
	raw := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = raw.Close() })

	prefix := "contentapi.test-" + uuid.NewString() + ":"

	cache, err := contentapi.NewRedisCache(ctx, &contentapi.RedisCacheConfig{Client: raw, KeyPrefix: prefix})
	require.NoError(t, err)

	other, err := contentapi.NewRedisCache(ctx, &contentapi.RedisCacheConfig{Client: raw, KeyPrefix: prefix + "other:"})
	require.NoError(t, err)

	entry := &contentapi.CacheEntry{Data: []byte("x"), ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, cache.Set(ctx, "contentapi.abc", entry))

	assert.Equal(t, int64(1), raw.Exists(ctx, prefix+"contentapi.abc").Val())
	assert.Equal(t, int64(0), raw.Exists(ctx, "contentapi.abc").Val())

	require.NoError(t, other.Clear(ctx))
	assert.True(t, cache.Has(ctx, "contentapi.abc"))

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, int64(0), raw.Exists(ctx, prefix+"contentapi.abc").Val())
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := contentapi.NewRedisCache(ctx, &contentapi.RedisCacheConfig{Addr: "127.0.0.1:1"})
	require.Error(t, err)
}

func TestNewNATSKVCache_NilConfig(t *testing.T) {
	t.Parallel()

	_, err := contentapi.NewNATSKVCache(context.Background(), nil)
	require.ErrorIs(t, err, contentapi.ErrNATSConfigRequired)

	_, err = contentapi.NewRedisCache(context.Background(), nil)
	require.ErrorIs(t, err, contentapi.ErrRedisConfigRequired)
}
