package contentapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBadDocument = errors.New("bad document")

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	dispatcher := contentapi.NewDispatcher(shapeParser())

	for _, endpoint := range []contentapi.Endpoint{
		contentapi.EndpointSections,
		contentapi.EndpointTags,
		contentapi.EndpointSearch,
		contentapi.EndpointItem,
	} {
		t.Run(string(endpoint), func(t *testing.T) {
			t.Parallel()

			resp, err := dispatcher.Dispatch(endpoint, []byte("<response/>"))
			require.NoError(t, err)
			assert.Equal(t, endpoint, resp.Endpoint())
		})
	}
}

func TestDispatcher_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := contentapi.NewDispatcher(shapeParser()).Dispatch("editions", nil)
		require.ErrorIs(t, err, contentapi.ErrUnknownEndpoint)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		t.Parallel()

		wrong := contentapi.ParserFunc(func(endpoint contentapi.Endpoint, body []byte) (contentapi.Response, error) {
			return &contentapi.TagsResponse{}, nil
		})

		_, err := contentapi.NewDispatcher(wrong).Dispatch(contentapi.EndpointSearch, nil)
		require.ErrorIs(t, err, contentapi.ErrShapeMismatch)
		assert.True(t, contentapi.IsParseError(err))

		var parseErr *contentapi.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, contentapi.EndpointSearch, parseErr.Endpoint)
	})

	t.Run("typed nil is a shape mismatch", func(t *testing.T) {
		t.Parallel()

		typedNil := contentapi.ParserFunc(func(endpoint contentapi.Endpoint, body []byte) (contentapi.Response, error) {
			var resp *contentapi.SectionsResponse

			return resp, nil
		})

		_, err := contentapi.NewDispatcher(typedNil).Dispatch(contentapi.EndpointSections, nil)
		require.ErrorIs(t, err, contentapi.ErrShapeMismatch)
	})

	t.Run("parser failure", func(t *testing.T) {
		t.Parallel()

		failing := contentapi.ParserFunc(func(endpoint contentapi.Endpoint, body []byte) (contentapi.Response, error) {
			return nil, errBadDocument
		})

		_, err := contentapi.NewDispatcher(failing).Dispatch(contentapi.EndpointTags, nil)
		require.ErrorIs(t, err, errBadDocument)
		assert.True(t, contentapi.IsParseError(err))
		assert.Contains(t, err.Error(), "parsing tags response")
	})
}

func TestClient_ParseErrorIsNotAPIError(t *testing.T) {
	t.Parallel()

	wrong := contentapi.ParserFunc(func(endpoint contentapi.Endpoint, body []byte) (contentapi.Response, error) {
		return &contentapi.SectionsResponse{}, nil
	})

	client, err := contentapi.NewClient(&contentapi.Config{BaseURL: testBaseURL}, &recordingTransport{}, wrong)
	require.NoError(t, err)

	resp, err := client.Search().Search(context.Background())
	require.ErrorIs(t, err, contentapi.ErrShapeMismatch)
	assert.Nil(t, resp)

	var apiErr *contentapi.APIError
	assert.NotErrorAs(t, err, &apiErr)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	errDown := errors.New("connection refused")
	client := newTestClient(t, nil, &recordingTransport{err: errDown})

	_, err := client.Tags().Tags(context.Background())
	require.ErrorIs(t, err, errDown)
	assert.Contains(t, err.Error(), "requesting tags")
}

func TestClient_NilResponse(t *testing.T) {
	t.Parallel()

	transport := contentapi.TransportFunc(func(ctx context.Context, url string) (*contentapi.RawResponse, error) {
		return nil, nil
	})

	client := newTestClient(t, nil, transport)

	_, err := client.Sections().Sections(context.Background())
	require.ErrorIs(t, err, contentapi.ErrNilResponse)
}

func TestNewClient_Validation(t *testing.T) {
	t.Parallel()

	_, err := contentapi.NewClient(nil, nil, shapeParser())
	require.ErrorIs(t, err, contentapi.ErrTransportRequired)

	_, err = contentapi.NewClient(nil, &recordingTransport{}, nil)
	require.ErrorIs(t, err, contentapi.ErrParserRequired)
}
