package contentapi_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheFactory_MemoryCache(t *testing.T) {
	t.Parallel()

	config := &contentapi.CacheConfig{
		Type:   contentapi.CacheTypeMemory,
		Memory: &contentapi.MemoryCacheConfig{MaxSize: 100},
	}

	cache, err := contentapi.NewCacheFromConfig(context.Background(), config)
	require.NoError(t, err)
	require.NotNil(t, cache)

	ctx := context.Background()
	entry := &contentapi.CacheEntry{
		Data:      []byte("test data"),
		ExpiresAt: time.Now().Add(1 * time.Hour),
		ETag:      "test-etag",
	}

	require.NoError(t, cache.Set(ctx, "test-key", entry))

	retrieved, err := cache.Get(ctx, "test-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.True(t, cache.Has(ctx, "test-key"))

	require.NoError(t, cache.Delete(ctx, "test-key"))
	assert.False(t, cache.Has(ctx, "test-key"))
}

func TestCacheFactory_NoOpCache(t *testing.T) {
	t.Parallel()

	cache, err := contentapi.NewCacheFromConfig(context.Background(), &contentapi.CacheConfig{Type: contentapi.CacheTypeNone})
	require.NoError(t, err)

	ctx := context.Background()

	// Set should succeed but do nothing
	require.NoError(t, cache.Set(ctx, "test-key", &contentapi.CacheEntry{Data: []byte("x")}))

	_, err = cache.Get(ctx, "test-key")
	require.ErrorIs(t, err, contentapi.ErrCacheDisabled)
	assert.False(t, cache.Has(ctx, "test-key"))
	require.NoError(t, cache.Delete(ctx, "test-key"))
	require.NoError(t, cache.Clear(ctx))
}

func TestCacheFactory_MissingBackendConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		cacheType contentapi.CacheType
		target    error
	}{
		{"nats", contentapi.CacheTypeNATS, contentapi.ErrNATSConfigRequired},
		{"redis", contentapi.CacheTypeRedis, contentapi.ErrRedisConfigRequired},
		{"invalid", contentapi.CacheType("invalid"), contentapi.ErrUnsupportedCacheType},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cache, err := contentapi.NewCacheFromConfig(context.Background(), &contentapi.CacheConfig{Type: testCase.cacheType})
			require.ErrorIs(t, err, testCase.target)
			assert.Nil(t, cache)
		})
	}
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	cache, err := contentapi.NewCacheBuilder().
		WithType(contentapi.CacheTypeMemory).
		WithMemoryConfig(50).
		WithOptions(&contentapi.CacheOptions{TTL: 10 * time.Minute, MaxSize: 50}).
		Build(context.Background())
	require.NoError(t, err)

	ctx := context.Background()
	entry := &contentapi.CacheEntry{Data: []byte("builder test"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, cache.Set(ctx, "builder-key", entry))

	retrieved, err := cache.Get(ctx, "builder-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
}

func TestCacheChain(t *testing.T) {
	t.Parallel()

	l1Cache := contentapi.NewMemoryCache(10)
	l2Cache := contentapi.NewMemoryCache(100)
	chain := contentapi.NewCacheChain(l1Cache, l2Cache)

	ctx := context.Background()
	entry := &contentapi.CacheEntry{Data: []byte("chain test"), ExpiresAt: time.Now().Add(time.Hour)}

	require.NoError(t, chain.Set(ctx, "chain-key", entry))
	assert.True(t, l1Cache.Has(ctx, "chain-key"))
	assert.True(t, l2Cache.Has(ctx, "chain-key"))

	// Delete from L1 only
	require.NoError(t, l1Cache.Delete(ctx, "chain-key"))

	// Get should still work (from L2) and repopulate L1
	retrieved, err := chain.Get(ctx, "chain-key")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, retrieved.Data)
	assert.True(t, l1Cache.Has(ctx, "chain-key"))

	require.NoError(t, chain.Delete(ctx, "chain-key"))
	assert.False(t, chain.Has(ctx, "chain-key"))

	_, err = chain.Get(ctx, "chain-key")
	require.ErrorIs(t, err, contentapi.ErrKeyNotFoundInAnyCache)
}

func TestDefaultCacheConfig(t *testing.T) {
	t.Parallel()

	config := contentapi.DefaultCacheConfig()
	assert.Equal(t, contentapi.CacheTypeMemory, config.Type)
	require.NotNil(t, config.Memory)
	assert.Equal(t, 1000, config.Memory.MaxSize)
	require.NotNil(t, config.Options)
	assert.Equal(t, 5*time.Minute, config.Options.TTL)
}

func TestCacheFactory_NilConfig(t *testing.T) {
	t.Parallel()

	cache, err := contentapi.NewCacheFromConfig(context.Background(), nil)
	require.NoError(t, err)

	_, ok := cache.(*contentapi.MemoryCache)
	assert.True(t, ok)
}

func TestParseCacheType(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"memory", "nats", "redis", "none"} {
		cacheType, err := contentapi.ParseCacheType(value)
		require.NoError(t, err)
		assert.Equal(t, contentapi.CacheType(value), cacheType)
	}

	cacheType, err := contentapi.ParseCacheType("")
	require.NoError(t, err)
	assert.Equal(t, contentapi.CacheTypeNone, cacheType)

	_, err = contentapi.ParseCacheType("disk")
	require.ErrorIs(t, err, contentapi.ErrUnsupportedCacheType)
}

func TestCacheConfig_EffectiveOptions(t *testing.T) {
	t.Parallel()

	var nilConfig *contentapi.CacheConfig
	assert.Equal(t, contentapi.DefaultCacheOptions(), nilConfig.EffectiveOptions())
	assert.Equal(t, contentapi.DefaultCacheOptions(), (&contentapi.CacheConfig{}).EffectiveOptions())

	custom := &contentapi.CacheOptions{TTL: time.Second, KeyPrefix: "x."}
	assert.Same(t, custom, (&contentapi.CacheConfig{Options: custom}).EffectiveOptions())
}

func TestCacheFactory_MemorySizeFromOptions(t *testing.T) {
	t.Parallel()

	cache, err := contentapi.NewCacheFromConfig(context.Background(), &contentapi.CacheConfig{
		Type:    contentapi.CacheTypeMemory,
		Options: &contentapi.CacheOptions{MaxSize: 2},
	})
	require.NoError(t, err)

	ctx := context.Background()

	for i, key := range []string{"a", "b", "c"} {
		entry := &contentapi.CacheEntry{Data: []byte(key), ExpiresAt: time.Now().Add(time.Duration(i+1) * time.Hour)}
		require.NoError(t, cache.Set(ctx, key, entry))
	}

	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "c"))
}

type closingCache struct {
	*contentapi.MemoryCache

	closed bool
	err    error
}

func (c *closingCache) Close() error {
	c.closed = true

	return c.err
}

type quietClosingCache struct {
	*contentapi.NoOpCache

	closed bool
}

func (c *quietClosingCache) Close() {
	c.closed = true
}

func TestCacheChain_Close(t *testing.T) {
	t.Parallel()

	errClose := errors.New("close failed")
	first := &closingCache{MemoryCache: contentapi.NewMemoryCache(1), err: errClose}
	second := &quietClosingCache{NoOpCache: contentapi.NewNoOpCache()}
	plain := contentapi.NewMemoryCache(1)

	err := contentapi.NewCacheChain(plain, first, second).Close()
	require.ErrorIs(t, err, errClose)
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestCacheBuilder_MemoryTierIgnoredForMemory(t *testing.T) {
	t.Parallel()

	cache, err := contentapi.NewCacheBuilder().
		WithType(contentapi.CacheTypeMemory).
		WithMemoryTier(10).
		Build(context.Background())
	require.NoError(t, err)

	_, ok := cache.(*contentapi.MemoryCache)
	assert.True(t, ok)
}
