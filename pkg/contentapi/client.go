package contentapi

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultBaseURL is the production endpoint used when Config.BaseURL is empty.
const DefaultBaseURL = "http://content.guardianapis.com"

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration.
//
// BaseURL and APIKey feed URL assembly and are read, never written, by every
// query built from the client. The remaining fields configure the default
// transport built by pkg/contentclient and are ignored when a custom
// Transport is supplied.
//
// No validation is performed on BaseURL or APIKey; malformed values surface
// when the transport attempts the request.
type Config struct {
	// BaseURL: target API root (e.g., "https://content.example.com"). Empty
	// means DefaultBaseURL. A trailing slash is trimmed.
	BaseURL string
	// APIKey: optional key appended as &api-key=<key> to every request.
	APIKey string

	// HTTPTimeout: per-request timeout of the default transport. Zero keeps
	// the transport default.
	HTTPTimeout time.Duration
	// RetryMax: retries for transient failures (>=500, 429, connection
	// errors). Zero, the default, disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// UserAgent: overrides the default User-Agent header.
	UserAgent string
	// Debug: enables request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the transport.
	Logger Logger
}

// Client binds a Config to the transport and parser that execute queries,
// and creates query builders.
//
// A Client is read-only after construction and safe for concurrent use.
// Query builders it creates are not; use one builder per query.
type Client struct {
	config     Config
	transport  Transport
	dispatcher *Dispatcher
}

// NewClient creates a client. config may be nil, in which case the zero
// Config (production endpoint, no key) is used. The config is copied.
func NewClient(config *Config, transport Transport, parser Parser) (*Client, error) {
	if transport == nil {
		return nil, ErrTransportRequired
	}

	if parser == nil {
		return nil, ErrParserRequired
	}

	var cfg Config
	if config != nil {
		cfg = *config
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		config:     cfg,
		transport:  transport,
		dispatcher: NewDispatcher(parser),
	}, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.config
}

// Sections starts a sections query.
func (c *Client) Sections() *SectionsQuery {
	return NewSectionsQuery(c)
}

// Tags starts a tags query.
func (c *Client) Tags() *TagsQuery {
	return NewTagsQuery(c)
}

// Search starts a content search.
func (c *Client) Search() *SearchQuery {
	return NewSearchQuery(c)
}

// Item starts a single-item lookup. A target must be set with
// WithTargetURL or WithItemID before the query is issued.
func (c *Client) Item() *ItemQuery {
	return NewItemQuery(c)
}

// endpointURL is the target for the list endpoints.
func (c *Client) endpointURL(endpoint Endpoint) string {
	return c.config.BaseURL + "/" + string(endpoint)
}

// buildURL assembles target, the format marker, the optional key, then each
// fragment in the order given.
func (c *Client) buildURL(target string, parts ...fragmenter) string {
	var b strings.Builder

	b.WriteString(target)
	b.WriteString("?format=xml")

	if c.config.APIKey != "" {
		b.WriteString("&api-key=")
		b.WriteString(c.config.APIKey)
	}

	for _, part := range parts {
		b.WriteString(part.fragment())
	}

	return b.String()
}

// execute issues the GET and dispatches the body as T.
func execute[T Response](ctx context.Context, c *Client, endpoint Endpoint, url string) (T, error) {
	var zero T

	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return zero, fmt.Errorf("requesting %s: %w", endpoint, err)
	}

	if resp == nil {
		return zero, ErrNilResponse
	}

	if !resp.IsSuccess() {
		return zero, &APIError{
			HTTPStatus:  resp.StatusCode,
			HTTPMessage: StatusMessage(resp.StatusCode, resp.Status),
		}
	}

	return dispatchAs[T](c.dispatcher, endpoint, resp.Body)
}
