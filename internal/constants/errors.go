package constants

import "errors"

// Configuration errors.
var (
	ErrUnknownConfigKey  = errors.New("unknown configuration key")
	ErrEmptyAPIKey       = errors.New("API key must not be empty")
	ErrNotATerminal      = errors.New("standard input is not a terminal, pass the key as an argument")
	ErrInvalidOutputFlag = errors.New("invalid output format (use table, json or yaml)")
	ErrInvalidCacheType  = errors.New("invalid cache type (use none, memory, nats or redis)")
	ErrInvalidRetries    = errors.New("retries must be a non-negative integer")
)

// Command errors.
var (
	ErrInvalidDateFlag    = errors.New("could not parse date")
	ErrInvalidOrderBy     = errors.New("invalid order (use newest, oldest or relevance)")
	ErrNoWebURL           = errors.New("item has no web URL to open")
	ErrUnexpectedItemKind = errors.New("item response carries no content, section or tag")
	ErrItemsFailed        = errors.New("item lookups failed")
)
