package contentapi_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
	"github.com/stretchr/testify/assert"
)

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &contentapi.APIError{HTTPStatus: 403, HTTPMessage: "Forbidden"}
	assert.Equal(t, "content API error: 403 Forbidden", err.Error())
}

func TestErrorHelpers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"not found", &contentapi.APIError{HTTPStatus: http.StatusNotFound}, contentapi.IsNotFound, true},
		{"wrapped not found", fmt.Errorf("lookup: %w", &contentapi.APIError{HTTPStatus: http.StatusNotFound}), contentapi.IsNotFound, true},
		{"unauthorized", &contentapi.APIError{HTTPStatus: http.StatusUnauthorized}, contentapi.IsUnauthorized, true},
		{"forbidden", &contentapi.APIError{HTTPStatus: http.StatusForbidden}, contentapi.IsForbidden, true},
		{"rate limited", &contentapi.APIError{HTTPStatus: http.StatusTooManyRequests}, contentapi.IsRateLimited, true},
		{"other status", &contentapi.APIError{HTTPStatus: http.StatusInternalServerError}, contentapi.IsNotFound, false},
		{"precondition", contentapi.ErrTargetURLRequired, contentapi.IsPrecondition, true},
		{"plain error", assert.AnError, contentapi.IsNotFound, false},
		{"parse error", &contentapi.ParseError{Endpoint: contentapi.EndpointTags, Err: assert.AnError}, contentapi.IsParseError, true},
		{"nil", nil, contentapi.IsParseError, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, testCase.check(testCase.err))
		})
	}
}

func TestStatusMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		line string
		want string
	}{
		{404, "404 Not Found", "Not Found"},
		{404, "Not Found", "Not Found"},
		{403, "403 Forbidden ", "Forbidden"},
		{500, "", "Internal Server Error"},
		{418, "418", "I'm a teapot"},
		{503, "503 Over Capacity", "Over Capacity"},
	}

	for _, testCase := range tests {
		t.Run(testCase.line, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.want, contentapi.StatusMessage(testCase.code, testCase.line))
		})
	}
}
