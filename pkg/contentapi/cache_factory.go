package contentapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/contentapi/internal/constants"
)

// CacheType names a cache backend.
type CacheType string

const (
	// CacheTypeMemory keeps responses in process.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS stores responses in a NATS JetStream KV bucket.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeRedis stores responses in Redis.
	CacheTypeRedis CacheType = "redis"

	// CacheTypeNone disables caching.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrRedisConfigRequired   = errors.New("redis configuration required for redis cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// ParseCacheType converts a flag or config value to a CacheType. An empty
// value disables caching.
func ParseCacheType(value string) (CacheType, error) {
	switch CacheType(value) {
	case CacheTypeMemory, CacheTypeNATS, CacheTypeRedis, CacheTypeNone:
		return CacheType(value), nil
	case "":
		return CacheTypeNone, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedCacheType, value)
	}
}

// CacheConfig selects and configures a backend for NewCacheFromConfig.
type CacheConfig struct {
	Type CacheType

	Memory *MemoryCacheConfig
	NATS   *NATSKVConfig
	Redis  *RedisCacheConfig

	// MemoryTier, when positive, puts an in-process cache of that many
	// entries in front of a NATS or Redis backend.
	MemoryTier int

	// Options are the write options for the CachingTransport in front of
	// the backend (TTL and key prefix). A memory backend without its own
	// Memory config takes its size from Options.MaxSize. nil means
	// DefaultCacheOptions().
	Options *CacheOptions
}

// EffectiveOptions returns the configured options, or the defaults.
func (c *CacheConfig) EffectiveOptions() *CacheOptions {
	if c == nil || c.Options == nil {
		return DefaultCacheOptions()
	}

	return c.Options
}

// MemoryCacheConfig configures the in-process backend.
type MemoryCacheConfig struct {
	// MaxSize bounds the number of cached responses.
	MaxSize int
}

// DefaultCacheConfig is a memory cache with default size and options.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
		},
		Options: DefaultCacheOptions(),
	}
}

// NewCacheFromConfig opens the backend described by config. A nil config
// yields DefaultCacheConfig's memory cache.
func NewCacheFromConfig(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		memory := config.Memory
		if memory == nil && config.Options != nil && config.Options.MaxSize > 0 {
			memory = &MemoryCacheConfig{MaxSize: config.Options.MaxSize}
		}

		return NewMemoryCacheFromConfig(memory), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := NewNATSKVCache(ctx, config.NATS)
		if err != nil {
			return nil, err
		}

		return withMemoryTier(cache, config.MemoryTier), nil

	case CacheTypeRedis:
		if config.Redis == nil {
			return nil, ErrRedisConfigRequired
		}

		cache, err := NewRedisCache(ctx, config.Redis)
		if err != nil {
			return nil, err
		}

		return withMemoryTier(cache, config.MemoryTier), nil

	case CacheTypeNone:
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

func withMemoryTier(remote Cache, size int) Cache {
	if size <= 0 {
		return remote
	}

	return NewCacheChain(NewMemoryCache(size), remote)
}

// NewMemoryCacheFromConfig creates a memory cache; nil config uses the
// default size.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil {
		return NewMemoryCache(constants.DefaultCacheSize)
	}

	return NewMemoryCache(config.MaxSize)
}

// NoOpCache stores nothing. It stands in when caching is switched off.
type NoOpCache struct{}

// NewNoOpCache returns a cache that never hits.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always fails with ErrCacheDisabled.
func (c *NoOpCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	return nil, ErrCacheDisabled
}

// Set discards the entry.
func (c *NoOpCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return nil
}

// Delete is a no-op.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear is a no-op.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// Has is always false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// CacheBuilder assembles a CacheConfig fluently. The CLI uses it to describe
// every backend up front and open only the selected one.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder starts from a memory cache with default options.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		config: &CacheConfig{
			Type:    CacheTypeMemory,
			Options: DefaultCacheOptions(),
		},
	}
}

// WithType selects the backend.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig sizes the memory backend.
func (b *CacheBuilder) WithMemoryConfig(maxSize int) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{MaxSize: maxSize}

	return b
}

// WithNATSConfig configures the NATS KV backend.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// WithRedisConfig configures the Redis backend.
func (b *CacheBuilder) WithRedisConfig(config *RedisCacheConfig) *CacheBuilder {
	b.config.Redis = config

	return b
}

// WithMemoryTier fronts a remote backend with a memory cache of maxSize
// entries.
func (b *CacheBuilder) WithMemoryTier(maxSize int) *CacheBuilder {
	b.config.MemoryTier = maxSize

	return b
}

// WithOptions sets the caching transport options.
func (b *CacheBuilder) WithOptions(options *CacheOptions) *CacheBuilder {
	b.config.Options = options

	return b
}

// Config returns the configuration assembled so far.
func (b *CacheBuilder) Config() *CacheConfig {
	return b.config
}

// Build opens the selected backend.
func (b *CacheBuilder) Build(ctx context.Context) (Cache, error) {
	return NewCacheFromConfig(ctx, b.config)
}

// CacheChain layers caches from fastest to slowest. A hit in a later tier
// is copied into the earlier ones.
type CacheChain struct {
	caches []Cache
}

// NewCacheChain layers caches in the given order.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{
		caches: caches,
	}
}

// Get returns the first tier's hit and backfills the tiers before it.
func (c *CacheChain) Get(ctx context.Context, key string) (*CacheEntry, error) {
	for i, cache := range c.caches {
		entry, err := cache.Get(ctx, key)
		if err != nil {
			continue
		}

		for _, earlier := range c.caches[:i] {
			_ = earlier.Set(ctx, key, entry)
		}

		return entry, nil
	}

	return nil, ErrKeyNotFoundInAnyCache
}

// Set writes entry to every tier.
func (c *CacheChain) Set(ctx context.Context, key string, entry *CacheEntry) error {
	return c.each(func(cache Cache) error { return cache.Set(ctx, key, entry) })
}

// Delete removes key from every tier.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	return c.each(func(cache Cache) error { return cache.Delete(ctx, key) })
}

// Clear empties every tier.
func (c *CacheChain) Clear(ctx context.Context) error {
	return c.each(func(cache Cache) error { return cache.Clear(ctx) })
}

// Has reports whether any tier holds key.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close releases every tier that holds a connection.
func (c *CacheChain) Close() error {
	return c.each(func(cache Cache) error {
		switch closer := cache.(type) {
		case interface{ Close() error }:
			return closer.Close()
		case interface{ Close() }:
			closer.Close()
		}

		return nil
	})
}

// each applies fn to every tier and joins the failures.
func (c *CacheChain) each(fn func(Cache) error) error {
	var errs []error

	for _, cache := range c.caches {
		err := fn(cache)
		if err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
