package contentapi

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned when the remote API answers with a non-success status.
type APIError struct {
	HTTPStatus  int    `json:"http_status"  yaml:"http_status"`
	HTTPMessage string `json:"http_message" yaml:"http_message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("content API error: %d %s", e.HTTPStatus, e.HTTPMessage)
}

// ParseError is returned when a response body cannot be turned into the
// response shape its endpoint expects.
type ParseError struct {
	Endpoint Endpoint
	Err      error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s response: %v", e.Endpoint, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrPrecondition      = errors.New("query precondition failed")
	ErrTargetURLRequired = fmt.Errorf("%w: target item URL is required", ErrPrecondition)
	ErrShapeMismatch     = errors.New("response does not match endpoint shape")
	ErrUnknownEndpoint   = errors.New("unknown endpoint")
	ErrResponseStatus    = errors.New("response status is not ok")
	ErrNilResponse       = errors.New("transport returned no response")
	ErrTransportRequired = errors.New("transport is required")
	ErrParserRequired    = errors.New("parser is required")
)

// IsNotFound checks if the error is a 404 from the remote API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the remote API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the remote API. The API
// answers 403 for missing or invalid keys on restricted tiers.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

// IsRateLimited checks if the error is a 429 from the remote API.
func IsRateLimited(err error) bool {
	return hasStatus(err, http.StatusTooManyRequests)
}

// IsPrecondition checks if the error is a local precondition failure.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// IsParseError checks if the error came from parsing or shape assertion.
func IsParseError(err error) bool {
	parseErr := &ParseError{}

	return errors.As(err, &parseErr)
}

func hasStatus(err error, status int) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatus == status
	}

	return false
}
