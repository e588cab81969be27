package contentapi_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://api.example.test"

// recordingTransport answers every GET with a fixed response and remembers
// the URLs it was asked for.
type recordingTransport struct {
	mu     sync.Mutex
	urls   []string
	status int
	line   string
	body   []byte
	err    error
}

func (r *recordingTransport) Get(ctx context.Context, url string) (*contentapi.RawResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.urls = append(r.urls, url)

	if r.err != nil {
		return nil, r.err
	}

	status := r.status
	if status == 0 {
		status = http.StatusOK
	}

	return &contentapi.RawResponse{StatusCode: status, Status: r.line, Body: r.body}, nil
}

func (r *recordingTransport) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.urls...)
}

// shapeParser returns an empty response of the shape each endpoint expects.
func shapeParser() contentapi.ParserFunc {
	return func(endpoint contentapi.Endpoint, body []byte) (contentapi.Response, error) {
		switch endpoint {
		case contentapi.EndpointSections:
			return &contentapi.SectionsResponse{}, nil
		case contentapi.EndpointTags:
			return &contentapi.TagsResponse{}, nil
		case contentapi.EndpointSearch:
			return &contentapi.SearchResponse{ResponseStatus: contentapi.ResponseStatus{Status: "ok"}}, nil
		default:
			return &contentapi.ItemResponse{}, nil
		}
	}
}

func newTestClient(t *testing.T, config *contentapi.Config, transport contentapi.Transport) *contentapi.Client {
	t.Helper()

	if config == nil {
		config = &contentapi.Config{BaseURL: testBaseURL}
	}

	client, err := contentapi.NewClient(config, transport, shapeParser())
	require.NoError(t, err)

	return client
}

func mustURL(t *testing.T, build func() (string, error)) string {
	t.Helper()

	url, err := build()
	require.NoError(t, err)

	return url
}
