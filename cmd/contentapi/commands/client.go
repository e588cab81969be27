package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	contenthttp "github.com/fivetwenty-io/contentapi/internal/http"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/fivetwenty-io/contentapi/pkg/contentclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// urlBuilder is satisfied by every query variant.
type urlBuilder interface {
	URL() (string, error)
}

// CreateClient builds a client from the resolved flags and configuration.
// The returned close function releases the cache backend, if any.
func CreateClient(ctx context.Context, cmd *cobra.Command) (*contentapi.Client, func(), error) {
	logger := newLogger(cmd.ErrOrStderr(), viper.GetBool("verbose"))

	config := &contentapi.Config{
		BaseURL:      viper.GetString("api"),
		APIKey:       viper.GetString(apiKeyKey),
		HTTPTimeout:  constants.DefaultHTTPTimeout,
		RetryMax:     viper.GetInt("retries"),
		RetryWaitMin: constants.DefaultRetryWaitMin,
		RetryWaitMax: constants.DefaultRetryWaitMax,
		Debug:        viper.GetBool("verbose"),
		Logger:       logger,
	}

	if config.RetryMax < 0 {
		return nil, nil, fmt.Errorf("%w: %d", constants.ErrInvalidRetries, config.RetryMax)
	}

	cache, cacheOptions, closeCache, err := createCache(ctx)
	if err != nil {
		return nil, nil, err
	}

	var opts []contentclient.Option
	if cache != nil {
		opts = append(opts, contentclient.WithCache(cache, cacheOptions))
	}

	client, err := contentclient.New(config, opts...)
	if err != nil {
		closeCache()

		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, closeCache, nil
}

// createCache opens the backend selected by --cache. Remote backends are
// fronted by a memory tier so repeated lookups within one run stay local.
func createCache(ctx context.Context) (contentapi.Cache, *contentapi.CacheOptions, func(), error) {
	noop := func() {}

	// Nothing is sent, so there is nothing to cache.
	if viper.GetBool("print-url") {
		return nil, nil, noop, nil
	}

	cacheType, err := contentapi.ParseCacheType(viper.GetString("cache"))
	if err != nil {
		return nil, nil, noop, fmt.Errorf("%w: %q", constants.ErrInvalidCacheType, viper.GetString("cache"))
	}

	if cacheType == contentapi.CacheTypeNone {
		return nil, nil, noop, nil
	}

	builder := contentapi.NewCacheBuilder().
		WithType(cacheType).
		WithMemoryConfig(constants.DefaultCacheSize).
		WithNATSConfig(&contentapi.NATSKVConfig{URL: viper.GetString("nats-url")}).
		WithRedisConfig(&contentapi.RedisCacheConfig{Addr: viper.GetString("redis-addr")}).
		WithMemoryTier(constants.DefaultMemoryTierSize)

	cache, err := builder.Build(ctx)
	if err != nil {
		return nil, nil, noop, fmt.Errorf("failed to create %s cache: %w", cacheType, err)
	}

	options := builder.Config().EffectiveOptions()

	switch c := cache.(type) {
	case *contentapi.CacheChain:
		return c, options, func() { _ = c.Close() }, nil
	case *contentapi.NATSKVCache:
		return c, options, c.Close, nil
	case *contentapi.RedisCache:
		return c, options, func() { _ = c.Close() }, nil
	default:
		return c, options, noop, nil
	}
}

// printURL writes the request URL, with the API key masked, when --print-url
// is set. It reports whether the caller should stop before sending.
func printURL(w io.Writer, query urlBuilder) (bool, error) {
	if !viper.GetBool("print-url") {
		return false, nil
	}

	url, err := query.URL()
	if err != nil {
		return true, err
	}

	_, err = fmt.Fprintln(w, contenthttp.RedactURL(url))

	return true, err
}
