package contentclient

import (
	"net/http"

	contenthttp "github.com/fivetwenty-io/contentapi/internal/http"
	"github.com/fivetwenty-io/contentapi/internal/document"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
)

// Option customises how New assembles the client.
type Option func(*options)

type options struct {
	transport    contentapi.Transport
	parser       contentapi.Parser
	httpClient   *http.Client
	chain        *contentapi.InterceptorChain
	cache        contentapi.Cache
	cacheOptions *contentapi.CacheOptions
}

// WithTransport replaces the default HTTP transport. Interceptors and cache
// are still layered around it.
func WithTransport(transport contentapi.Transport) Option {
	return func(o *options) {
		o.transport = transport
	}
}

// WithParser replaces the default XML parser.
func WithParser(parser contentapi.Parser) Option {
	return func(o *options) {
		o.parser = parser
	}
}

// WithHTTPClient sets the *http.Client used by the default transport. A
// non-zero Config.HTTPTimeout overrides the client's own Timeout; the
// caller's client is not modified.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithRequestInterceptor adds a request interceptor.
func WithRequestInterceptor(interceptor contentapi.RequestInterceptor) Option {
	return func(o *options) {
		o.interceptors().AddRequestInterceptor(interceptor)
	}
}

// WithResponseInterceptor adds a response interceptor.
func WithResponseInterceptor(interceptor contentapi.ResponseInterceptor) Option {
	return func(o *options) {
		o.interceptors().AddResponseInterceptor(interceptor)
	}
}

// WithMetrics feeds the Prometheus collectors from every request that
// reaches the network.
func WithMetrics(metrics *contentapi.PrometheusMetrics) Option {
	return func(o *options) {
		onRequest, onResponse := metrics.Interceptors()
		o.interceptors().AddRequestInterceptor(onRequest)
		o.interceptors().AddResponseInterceptor(onResponse)
	}
}

// WithRateLimit throttles requests that reach the network.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return WithRequestInterceptor(contentapi.RateLimitInterceptor(requestsPerSecond, burst))
}

// WithCache serves repeated URLs from cache. nil options use
// contentapi.DefaultCacheOptions.
func WithCache(cache contentapi.Cache, cacheOptions *contentapi.CacheOptions) Option {
	return func(o *options) {
		o.cache = cache
		o.cacheOptions = cacheOptions
	}
}

func (o *options) interceptors() *contentapi.InterceptorChain {
	if o.chain == nil {
		o.chain = contentapi.NewInterceptorChain()
	}

	return o.chain
}

// New creates a content API client. config may be nil for the production
// endpoint without a key.
//
// The transport stack is, from the outside in: cache (if any), interceptors
// (if any), then the HTTP transport. Cache hits therefore skip rate limiting
// and metrics.
func New(config *contentapi.Config, opts ...Option) (*contentapi.Client, error) {
	var cfg contentapi.Config
	if config != nil {
		cfg = *config
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	transport := o.transport
	if transport == nil {
		transport = newHTTPTransport(&cfg, o.httpClient)
	}

	if o.chain != nil {
		transport = contentapi.NewInterceptingTransport(transport, o.chain)
	}

	if o.cache != nil {
		transport = contentapi.NewCachingTransport(transport, o.cache, o.cacheOptions)
	}

	parser := o.parser
	if parser == nil {
		parser = document.NewXMLParser()
	}

	return contentapi.NewClient(&cfg, transport, parser)
}

func newHTTPTransport(cfg *contentapi.Config, httpClient *http.Client) *contenthttp.Client {
	// The client swap comes first so Config.HTTPTimeout applies to it.
	httpOpts := []contenthttp.Option{
		contenthttp.WithHTTPClient(httpClient),
		contenthttp.WithTimeout(cfg.HTTPTimeout),
		contenthttp.WithUserAgent(cfg.UserAgent),
		contenthttp.WithDebug(cfg.Debug),
	}

	if cfg.Logger != nil {
		httpOpts = append(httpOpts, contenthttp.WithLogger(cfg.Logger))
	}

	if cfg.RetryMax > 0 {
		httpOpts = append(httpOpts, contenthttp.WithRetryConfig(cfg.RetryMax, cfg.RetryWaitMin, cfg.RetryWaitMax))
	}

	return contenthttp.NewClient(httpOpts...)
}

// NewWithEndpoint creates a client for baseURL without an API key.
func NewWithEndpoint(baseURL string, opts ...Option) (*contentapi.Client, error) {
	return New(&contentapi.Config{BaseURL: baseURL}, opts...)
}

// NewWithKey creates a client for baseURL that sends apiKey with every request.
func NewWithKey(baseURL, apiKey string, opts ...Option) (*contentapi.Client, error) {
	return New(&contentapi.Config{BaseURL: baseURL, APIKey: apiKey}, opts...)
}
