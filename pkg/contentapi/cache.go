package contentapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fivetwenty-io/contentapi/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrEntryExpired = errors.New("entry expired")
)

// CacheEntry is a cached response body.
type CacheEntry struct {
	Data       []byte    `json:"data"`
	StatusCode int       `json:"status_code,omitempty"`
	ExpiresAt  time.Time `json:"expires_at"`
	ETag       string    `json:"etag,omitempty"`
}

// Expired reports whether the entry is past its expiry. A zero ExpiresAt
// never expires.
func (e *CacheEntry) Expired() bool {
	return !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt)
}

// Cache is a key/value store for response bodies.
type Cache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Has(ctx context.Context, key string) bool
}

// CacheOptions are applied to any cache backend.
type CacheOptions struct {
	// TTL is how long a cached response stays fresh.
	TTL time.Duration
	// MaxSize bounds the number of entries where the backend supports it.
	MaxSize int
	// KeyPrefix is prepended to every key.
	KeyPrefix string
}

// DefaultCacheOptions returns default cache options.
func DefaultCacheOptions() *CacheOptions {
	return &CacheOptions{
		TTL:       constants.DefaultCacheTTL,
		MaxSize:   constants.DefaultCacheSize,
		KeyPrefix: constants.DefaultCacheKeyPrefix,
	}
}

// MemoryCache is an in-process cache bounded by entry count. When full, the
// entry closest to expiry is evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	items   map[string]*CacheEntry
	maxSize int
}

// NewMemoryCache creates a memory cache holding at most maxSize entries.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		items:   make(map[string]*CacheEntry),
		maxSize: maxSize,
	}
}

// Get returns the entry for key.
func (c *MemoryCache) Get(ctx context.Context, key string) (*CacheEntry, error) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrKeyNotFound, key)
	}

	if entry.Expired() {
		return nil, fmt.Errorf("%w: %s", ErrEntryExpired, key)
	}

	return entry, nil
}

// Set stores entry under key, evicting if the cache is full.
func (c *MemoryCache) Set(ctx context.Context, key string, entry *CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxSize {
		c.evictLocked()
	}

	c.items[key] = entry

	return nil
}

// evictLocked drops the entry that expires first.
func (c *MemoryCache) evictLocked() {
	var (
		victim   string
		earliest time.Time
		found    bool
	)

	for key, entry := range c.items {
		if !found || entry.ExpiresAt.Before(earliest) {
			victim, earliest, found = key, entry.ExpiresAt, true
		}
	}

	if found {
		delete(c.items, victim)
	}
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*CacheEntry)

	return nil
}

// Has reports whether a fresh entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	_, err := c.Get(ctx, key)

	return err == nil
}

// Cleanup removes expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.items {
		if entry.Expired() {
			delete(c.items, key)
		}
	}
}

// CacheStats counts cache activity.
type CacheStats struct {
	Hits   int64
	Misses int64
	Sets   int64
	Errors int64
}

// GetHitRate returns hits over lookups, or 0 with no lookups.
func (s *CacheStats) GetHitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}

	return float64(s.Hits) / float64(total)
}

// CachingTransport serves successful responses from a Cache and stores fresh
// ones. Only 2xx responses are cached. Keys are derived from a hash of the
// full URL so API keys never reach an external store in clear text.
type CachingTransport struct {
	next    Transport
	cache   Cache
	options *CacheOptions

	hits     atomic.Int64
	misses   atomic.Int64
	sets     atomic.Int64
	failures atomic.Int64
}

// NewCachingTransport wraps next with cache. nil options use DefaultCacheOptions.
func NewCachingTransport(next Transport, cache Cache, options *CacheOptions) *CachingTransport {
	if options == nil {
		options = DefaultCacheOptions()
	}

	return &CachingTransport{next: next, cache: cache, options: options}
}

// CacheKey returns the cache key used for url.
func (t *CachingTransport) CacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))

	return t.options.KeyPrefix + hex.EncodeToString(sum[:])
}

// Get implements Transport.
func (t *CachingTransport) Get(ctx context.Context, url string) (*RawResponse, error) {
	key := t.CacheKey(url)

	entry, err := t.cache.Get(ctx, key)
	if err == nil {
		t.hits.Add(1)

		status := entry.StatusCode
		if status == 0 {
			status = http.StatusOK
		}

		return &RawResponse{StatusCode: status, Status: http.StatusText(status), Body: entry.Data}, nil
	}

	t.misses.Add(1)

	resp, err := t.next.Get(ctx, url)
	if err != nil || resp == nil || !resp.IsSuccess() {
		return resp, err
	}

	entry = &CacheEntry{
		Data:       resp.Body,
		StatusCode: resp.StatusCode,
		ETag:       resp.Header.Get("ETag"),
	}

	if t.options.TTL > 0 {
		entry.ExpiresAt = time.Now().Add(t.options.TTL)
	}

	if setErr := t.cache.Set(ctx, key, entry); setErr != nil {
		t.failures.Add(1)
	} else {
		t.sets.Add(1)
	}

	return resp, nil
}

// Stats returns a snapshot of cache activity.
func (t *CachingTransport) Stats() CacheStats {
	return CacheStats{
		Hits:   t.hits.Load(),
		Misses: t.misses.Load(),
		Sets:   t.sets.Load(),
		Errors: t.failures.Load(),
	}
}
