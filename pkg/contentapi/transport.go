package contentapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// RawResponse is what a Transport hands back for a completed GET.
type RawResponse struct {
	StatusCode int
	// Status is the reason phrase of the status line, e.g. "Not Found".
	Status string
	Header http.Header
	Body   []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *RawResponse) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Transport performs a GET for a fully assembled URL. Cancellation and
// timeouts belong to the transport; a call either returns a complete response
// or an error.
type Transport interface {
	Get(ctx context.Context, url string) (*RawResponse, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, url string) (*RawResponse, error)

// Get calls f.
func (f TransportFunc) Get(ctx context.Context, url string) (*RawResponse, error) {
	return f(ctx, url)
}

// StatusMessage returns the reason phrase of a status line such as
// "404 Not Found". When the line carries no text the standard phrase for the
// code is used.
func StatusMessage(code int, statusLine string) string {
	msg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(statusLine), strconv.Itoa(code)))
	if msg == "" {
		return http.StatusText(code)
	}

	return msg
}
