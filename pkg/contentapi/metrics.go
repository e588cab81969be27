package contentapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics exports request counts and latencies as Prometheus
// collectors, labelled by endpoint and status code.
type PrometheusMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewPrometheusMetrics creates the collectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) (*PrometheusMetrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PrometheusMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "contentapi",
			Name:      "requests_total",
			Help:      "Requests issued to the content API.",
		}, []string{"endpoint", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "contentapi",
			Name:      "request_duration_seconds",
			Help:      "Latency of content API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}

	for _, collector := range []prometheus.Collector{m.requests, m.duration} {
		err := reg.Register(collector)
		if err != nil {
			return nil, fmt.Errorf("registering content API metrics: %w", err)
		}
	}

	return m, nil
}

// Interceptors returns the request/response pair that feeds the collectors.
func (m *PrometheusMetrics) Interceptors() (RequestInterceptor, ResponseInterceptor) {
	onRequest := func(ctx context.Context, req *InterceptedRequest) error {
		markStart(req)

		return nil
	}

	onResponse := func(ctx context.Context, req *InterceptedRequest, resp *InterceptedResponse) error {
		endpoint := endpointLabel(req.Path)

		code := "error"
		if resp.Error == nil {
			code = strconv.Itoa(resp.StatusCode)
		}

		m.requests.WithLabelValues(endpoint, code).Inc()

		if start := startOf(req); !start.IsZero() {
			m.duration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}

		return nil
	}

	return onRequest, onResponse
}

// endpointLabel maps a request path to a bounded label: the list endpoints
// keep their name, everything else is an item lookup.
func endpointLabel(path string) string {
	switch Endpoint(strings.Trim(path, "/")) {
	case EndpointSections:
		return string(EndpointSections)
	case EndpointTags:
		return string(EndpointTags)
	case EndpointSearch:
		return string(EndpointSearch)
	default:
		return string(EndpointItem)
	}
}
