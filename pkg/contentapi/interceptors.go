package contentapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// InterceptedRequest represents an outgoing GET that can be intercepted.
type InterceptedRequest struct {
	Method   string
	URL      string
	Path     string
	Metadata map[string]interface{}
}

// InterceptedResponse represents a completed GET that can be intercepted.
type InterceptedResponse struct {
	StatusCode int
	Status     string
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *InterceptedRequest) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *InterceptedRequest) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// InterceptingTransport runs an interceptor chain around another Transport.
type InterceptingTransport struct {
	next  Transport
	chain *InterceptorChain
}

// NewInterceptingTransport wraps next with chain.
func NewInterceptingTransport(next Transport, chain *InterceptorChain) *InterceptingTransport {
	if chain == nil {
		chain = NewInterceptorChain()
	}

	return &InterceptingTransport{next: next, chain: chain}
}

// Get implements Transport. A response interceptor error replaces a
// successful result; it never masks a transport error.
func (t *InterceptingTransport) Get(ctx context.Context, rawURL string) (*RawResponse, error) {
	req := &InterceptedRequest{
		Method: http.MethodGet,
		URL:    rawURL,
		Path:   requestPath(rawURL),
	}

	err := t.chain.ExecuteRequestInterceptors(ctx, req)
	if err != nil {
		return nil, err
	}

	raw, err := t.next.Get(ctx, req.URL)

	resp := &InterceptedResponse{Error: err}
	if raw != nil {
		resp.StatusCode = raw.StatusCode
		resp.Status = raw.Status
		resp.Body = raw.Body
	}

	interceptErr := t.chain.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		return nil, err
	}

	if interceptErr != nil {
		return nil, interceptErr
	}

	return raw, nil
}

func requestPath(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	return parsed.Path
}

// Common Interceptors

// LoggingInterceptor logs requests. The URL is logged without its query
// string so API keys stay out of logs.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *InterceptedRequest) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// RateLimitInterceptor implements client-side rate limiting with a token
// bucket refilled at requestsPerSecond and holding at most burst tokens.
func RateLimitInterceptor(requestsPerSecond float64, burst int) RequestInterceptor {
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), max(burst, 1))

	return func(ctx context.Context, req *InterceptedRequest) error {
		return limiter.Wait(ctx)
	}
}

// Metrics holds counters for one endpoint.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
}

// MetricsCollector collects API metrics keyed by "METHOD path".
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(endpoint string, metrics Metrics)
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// SetOnChange sets a callback for when metrics change. The callback receives
// a snapshot.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot of the metrics for an endpoint, or nil.
func (m *MetricsCollector) GetMetrics(endpoint string) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if metrics, ok := m.metrics[endpoint]; ok {
		snapshot := *metrics

		return &snapshot
	}

	return nil
}

func (m *MetricsCollector) record(endpoint string, start time.Time, failed bool) {
	m.mu.Lock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastRequestTime = time.Now()

	if !start.IsZero() {
		metrics.TotalLatency += time.Since(start)
		metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
	}

	if failed {
		metrics.TotalErrors++
	}

	snapshot := *metrics
	onChange := m.onChange
	m.mu.Unlock()

	if onChange != nil {
		onChange(endpoint, snapshot)
	}
}

const startTimeKey = "start_time"

// MetricsRequestInterceptor records request start time.
func MetricsRequestInterceptor(collector *MetricsCollector) RequestInterceptor {
	return func(ctx context.Context, req *InterceptedRequest) error {
		markStart(req)

		return nil
	}
}

// MetricsResponseInterceptor records response metrics.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		endpoint := fmt.Sprintf("%s %s", req.Method, req.Path)
		collector.record(endpoint, startOf(req), failed(resp))

		return nil
	}
}

func markStart(req *InterceptedRequest) {
	if req.Metadata == nil {
		req.Metadata = make(map[string]interface{})
	}

	req.Metadata[startTimeKey] = time.Now()
}

func startOf(req *InterceptedRequest) time.Time {
	if req.Metadata == nil {
		return time.Time{}
	}

	start, _ := req.Metadata[startTimeKey].(time.Time)

	return start
}

func failed(resp *InterceptedResponse) bool {
	return resp.Error != nil || resp.StatusCode >= http.StatusBadRequest
}
