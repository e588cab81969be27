// Package document decodes content API response documents into the typed
// responses of package contentapi.
package document

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"

	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
)

// Static errors for err113 compliance.
var (
	ErrEmptyBody = errors.New("response body is empty")
)

// statusOK is the status attribute of a successful response document.
const statusOK = "ok"

// XMLParser implements contentapi.Parser for format=xml documents.
type XMLParser struct{}

// NewXMLParser creates a parser.
func NewXMLParser() *XMLParser {
	return &XMLParser{}
}

// Parse decodes body as the response for endpoint. A document whose status
// is not "ok" fails with contentapi.ErrResponseStatus.
func (p *XMLParser) Parse(endpoint contentapi.Endpoint, body []byte) (contentapi.Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyBody
	}

	var wire wireResponse

	err := xml.Unmarshal(body, &wire)
	if err != nil {
		return nil, fmt.Errorf("decoding XML: %w", err)
	}

	if wire.Status != statusOK {
		return nil, fmt.Errorf("%w: %q %s", contentapi.ErrResponseStatus, wire.Status, wire.Message)
	}

	switch endpoint {
	case contentapi.EndpointSections:
		return sections(&wire), nil
	case contentapi.EndpointTags:
		return tags(&wire), nil
	case contentapi.EndpointSearch:
		return search(&wire), nil
	case contentapi.EndpointItem:
		return item(&wire), nil
	default:
		return nil, fmt.Errorf("%w: %q", contentapi.ErrUnknownEndpoint, endpoint)
	}
}

func sections(wire *wireResponse) *contentapi.SectionsResponse {
	resp := &contentapi.SectionsResponse{ResponseStatus: wire.status()}

	for _, s := range wire.Results.Sections {
		resp.Results = append(resp.Results, s.toSection())
	}

	return resp
}

func tags(wire *wireResponse) *contentapi.TagsResponse {
	resp := &contentapi.TagsResponse{ResponseStatus: wire.status(), Paging: wire.paging()}

	for _, t := range wire.Results.Tags {
		resp.Results = append(resp.Results, t.toTag())
	}

	return resp
}

func search(wire *wireResponse) *contentapi.SearchResponse {
	return &contentapi.SearchResponse{
		ResponseStatus:   wire.status(),
		Paging:           wire.paging(),
		Results:          contentList(wire.Results.Content),
		RefinementGroups: refinementGroups(wire.RefinementGroups),
	}
}

func item(wire *wireResponse) *contentapi.ItemResponse {
	resp := &contentapi.ItemResponse{
		ResponseStatus: wire.status(),
		Paging:         wire.paging(),
		Results:        contentList(wire.Results.Content),
		EditorsPicks:   contentList(wire.EditorsPicks),
		StoryPackage:   contentList(wire.StoryPackage),
		MostViewed:     contentList(wire.MostViewed),
	}

	if wire.Content != nil {
		content := wire.Content.toContent()
		resp.Content = &content
	}

	if wire.Section != nil {
		section := wire.Section.toSection()
		resp.Section = &section
	}

	if wire.Tag != nil {
		tag := wire.Tag.toTag()
		resp.Tag = &tag
	}

	return resp
}
