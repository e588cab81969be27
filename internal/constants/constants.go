package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as cache bucket setup.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits. Retries are opt-in; the transport never retries unless asked.
const (
	// DefaultRetryMax is the retry count used by callers that opt in to retries.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// HTTP request defaults.
const (
	// DefaultUserAgent is sent with every request unless overridden.
	DefaultUserAgent = "contentapi-go/1.0"

	// AcceptXML is the Accept header value matching the format=xml marker.
	AcceptXML = "application/xml"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"
)

// Cache configuration.
const (
	// DefaultCacheSize is the default number of entries held by the memory cache.
	DefaultCacheSize = 1000

	// DefaultMemoryTierSize bounds the memory cache placed in front of a NATS or Redis backend.
	DefaultMemoryTierSize = 100

	// DefaultCacheTTL is how long a cached response stays fresh.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultCacheKeyPrefix prefixes every cache key. Dots keep keys valid for NATS KV.
	DefaultCacheKeyPrefix = "contentapi."

	// DefaultNATSBucket is the NATS KV bucket used when none is configured.
	DefaultNATSBucket = "contentapi"

	// DefaultRedisKeyPrefix namespaces the Redis backend's keys within a shared database.
	DefaultRedisKeyPrefix = "contentapi:"

	// RedisScanCount is the page size used when scanning keys during Clear.
	RedisScanCount = 100
)

// Batching limits.
const (
	// DefaultBatchConcurrency limits concurrent lookups in a batch.
	DefaultBatchConcurrency = 5
)

// Output formatting.
const (
	// FormatJSON selects JSON output.
	FormatJSON = "json"

	// FormatYAML selects YAML output.
	FormatYAML = "yaml"

	// FormatTable selects table output.
	FormatTable = "table"

	// JSONIndentSize is the indent width for JSON output.
	JSONIndentSize = 2

	// TitleDisplayLength truncates titles in table output.
	TitleDisplayLength = 60

	// DateLayout is the date format accepted by the from-date and to-date filters.
	DateLayout = "2006-01-02"

	// DisplayTimeLayout formats publication dates in table output.
	DisplayTimeLayout = "2006-01-02 15:04"

	// MaskedSecret replaces secrets in logs and config output.
	MaskedSecret = "***"

	// NotAvailable is printed for empty values.
	NotAvailable = "N/A"
)
