package contentapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/redis/go-redis/v9"
)

// RedisCacheConfig configures a Redis-backed cache.
type RedisCacheConfig struct {
	// Addr is host:port of the Redis server. Ignored when Client is set.
	Addr     string
	Password string
	DB       int

	// KeyPrefix namespaces every key this cache reads or writes, so several
	// caches can share one database and Clear only removes its own keys.
	// Defaults to constants.DefaultRedisKeyPrefix.
	KeyPrefix string

	// Client reuses an existing client; the cache will not close it.
	Client *redis.Client
}

// RedisCache stores JSON encoded cache entries in Redis. Entries with an
// expiry are written with a matching key TTL.
type RedisCache struct {
	client    *redis.Client
	keyPrefix string
	ownClient bool
}

// NewRedisCache creates the cache and pings the server.
func NewRedisCache(ctx context.Context, config *RedisCacheConfig) (*RedisCache, error) {
	if config == nil {
		return nil, ErrRedisConfigRequired
	}

	client := config.Client
	ownClient := false

	if client == nil {
		client = redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		})
		ownClient = true
	}

	err := client.Ping(ctx).Err()
	if err != nil {
		if ownClient {
			_ = client.Close()
		}

		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}

	return &RedisCache{client: client, keyPrefix: prefix, ownClient: ownClient}, nil
}

func (c *RedisCache) key(key string) string {
	return c.keyPrefix + key
}

// Get returns the entry for key.
func (c *RedisCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
		}

		return nil, fmt.Errorf("reading %s from redis: %w", key, err)
	}

	var entry CacheEntry

	err = json.Unmarshal(data, &entry)
	if err != nil {
		return nil, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}

	if entry.Expired() {
		return nil, fmt.Errorf("%w: %s", ErrEntryExpired, key)
	}

	return &entry, nil
}

// Set stores entry under key.
func (c *RedisCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}

	var ttl time.Duration
	if !entry.ExpiresAt.IsZero() {
		ttl = time.Until(entry.ExpiresAt)
		if ttl <= 0 {
			return nil
		}
	}

	err = c.client.Set(ctx, c.key(key), data, ttl).Err()
	if err != nil {
		return fmt.Errorf("writing %s to redis: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	err := c.client.Del(ctx, c.key(key)).Err()
	if err != nil {
		return fmt.Errorf("deleting %s from redis: %w", key, err)
	}

	return nil
}

// Clear removes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) error {
	var cursor uint64

	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.keyPrefix+"*", constants.RedisScanCount).Result()
		if err != nil {
			return fmt.Errorf("scanning redis keys: %w", err)
		}

		if len(keys) > 0 {
			err = c.client.Del(ctx, keys...).Err()
			if err != nil {
				return fmt.Errorf("deleting redis keys: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Has reports whether key exists.
func (c *RedisCache) Has(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, c.key(key)).Result()

	return err == nil && n > 0
}

// Close releases the client if the cache created it.
func (c *RedisCache) Close() error {
	if !c.ownClient {
		return nil
	}

	return c.client.Close()
}
