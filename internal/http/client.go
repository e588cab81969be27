package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fivetwenty-io/contentapi/internal/constants"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
)

// Static errors for err113 compliance.
var (
	ErrEmptyURL = errors.New("request URL is empty")
)

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Client is the default contentapi.Transport: a retrying HTTP GET client
// that reads the whole body and reports non-2xx answers as responses, not
// errors.
type Client struct {
	httpClient *retryablehttp.Client
	userAgent  string
	logger     Logger
	debug      bool
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig enables retries of transient failures (connection errors,
// 429 and 5xx other than 501) with exponential backoff between waitMin and
// waitMax.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = max(retryMax, 0)

		if waitMin > 0 {
			c.httpClient.RetryWaitMin = waitMin
		}

		if waitMax > 0 {
			c.httpClient.RetryWaitMax = waitMax
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client. The client is
// copied, so later options such as WithTimeout do not modify the caller's.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			clone := *httpClient
			c.httpClient.HTTPClient = &clone
		}
	}
}

// NewClient creates a transport. Retries are off unless WithRetryConfig is
// given.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.Logger = nil
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	client := &Client{
		httpClient: retryClient,
		userAgent:  constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient.RequestLogHook = client.logAttempt

	return client
}

// Get implements contentapi.Transport.
func (c *Client) Get(ctx context.Context, url string) (*contentapi.RawResponse, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	requestID := uuid.NewString()

	req.Header.Set("Accept", constants.AcceptXML)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(constants.RequestIDHeader, requestID)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     http.MethodGet,
			"url":        RedactURL(url),
			"request_id": requestID,
		})
	}

	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"duration":   time.Since(start).String(),
			"bytes":      len(body),
			"request_id": requestID,
		})
	}

	return &contentapi.RawResponse{
		StatusCode: resp.StatusCode,
		Status:     contentapi.StatusMessage(resp.StatusCode, resp.Status),
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// logAttempt reports retries; the first attempt is covered by Get.
func (c *Client) logAttempt(_ retryablehttp.Logger, req *http.Request, attempt int) {
	if attempt == 0 || c.logger == nil {
		return
	}

	c.logger.Warn("Retrying request", map[string]interface{}{
		"url":        RedactURL(req.URL.String()),
		"attempt":    attempt,
		"request_id": req.Header.Get(constants.RequestIDHeader),
	})
}

// RedactURL masks the api-key parameter of a URL. The rest of the URL is
// returned untouched.
func RedactURL(url string) string {
	const param = "api-key="

	idx := strings.Index(url, param)
	if idx < 0 {
		return url
	}

	start := idx + len(param)

	end := strings.IndexByte(url[start:], '&')
	if end < 0 {
		return url[:start] + constants.MaskedSecret
	}

	return url[:start] + constants.MaskedSecret + url[start+end:]
}
