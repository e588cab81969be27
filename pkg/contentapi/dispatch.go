package contentapi

import (
	"errors"
	"fmt"
)

// Parser turns a response body into one of the typed responses. It is the
// document-format collaborator; the default XML implementation lives in
// internal/document and is wired by pkg/contentclient.
type Parser interface {
	Parse(endpoint Endpoint, body []byte) (Response, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(endpoint Endpoint, body []byte) (Response, error)

// Parse calls f.
func (f ParserFunc) Parse(endpoint Endpoint, body []byte) (Response, error) {
	return f(endpoint, body)
}

// Dispatcher hands response bodies to a Parser and asserts that what comes
// back has the shape the endpoint tag promises. It holds no parsing logic.
type Dispatcher struct {
	parser Parser
}

// NewDispatcher creates a dispatcher over parser.
func NewDispatcher(parser Parser) *Dispatcher {
	return &Dispatcher{parser: parser}
}

// Dispatch parses body for endpoint and returns the matching response.
func (d *Dispatcher) Dispatch(endpoint Endpoint, body []byte) (Response, error) {
	if !endpoint.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEndpoint, endpoint)
	}

	resp, err := d.parser.Parse(endpoint, body)
	if err != nil {
		parseErr := &ParseError{}
		if errors.As(err, &parseErr) {
			return nil, err
		}

		return nil, &ParseError{Endpoint: endpoint, Err: err}
	}

	if !hasShape(endpoint, resp) {
		return nil, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("%w: got %T", ErrShapeMismatch, resp)}
	}

	return resp, nil
}

// hasShape reports whether resp is the non-nil concrete type bound to endpoint.
func hasShape(endpoint Endpoint, resp Response) bool {
	switch endpoint {
	case EndpointSections:
		r, ok := resp.(*SectionsResponse)

		return ok && r != nil
	case EndpointTags:
		r, ok := resp.(*TagsResponse)

		return ok && r != nil
	case EndpointSearch:
		r, ok := resp.(*SearchResponse)

		return ok && r != nil
	case EndpointItem:
		r, ok := resp.(*ItemResponse)

		return ok && r != nil
	default:
		return false
	}
}

// dispatchAs dispatches and narrows the result to the concrete type T.
func dispatchAs[T Response](d *Dispatcher, endpoint Endpoint, body []byte) (T, error) {
	var zero T

	resp, err := d.Dispatch(endpoint, body)
	if err != nil {
		return zero, err
	}

	typed, ok := resp.(T)
	if !ok {
		return zero, &ParseError{Endpoint: endpoint, Err: fmt.Errorf("%w: got %T", ErrShapeMismatch, resp)}
	}

	return typed, nil
}
