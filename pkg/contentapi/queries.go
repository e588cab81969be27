package contentapi

import (
	"context"
	"strings"
)

// SectionsQuery lists sections, optionally filtered by a search term.
//
// Fragment order: SearchTerm.
type SectionsQuery struct {
	SearchTerm[*SectionsQuery]

	client *Client
}

// NewSectionsQuery creates a sections query bound to client.
func NewSectionsQuery(client *Client) *SectionsQuery {
	q := &SectionsQuery{client: client}
	q.SearchTerm.self = q

	return q
}

// URL assembles the request URL without issuing it.
func (q *SectionsQuery) URL() (string, error) {
	return q.client.buildURL(q.client.endpointURL(EndpointSections), &q.SearchTerm), nil
}

// Sections issues the query.
func (q *SectionsQuery) Sections(ctx context.Context) (*SectionsResponse, error) {
	url, err := q.URL()
	if err != nil {
		return nil, err
	}

	return execute[*SectionsResponse](ctx, q.client, EndpointSections, url)
}

// tagFilters holds the section and type filters specific to tag listings.
type tagFilters struct {
	section *string
	tagType *string
}

func (f *tagFilters) fragment() string {
	var w fragmentWriter
	w.param("section", f.section)
	w.param("type", f.tagType)

	return w.String()
}

// TagsQuery lists tags.
//
// Fragment order: Pagination, ItemDisplay, SearchTerm, then the tag-specific
// section and type filters.
type TagsQuery struct {
	Pagination[*TagsQuery]
	ItemDisplay[*TagsQuery]
	SearchTerm[*TagsQuery]

	client  *Client
	filters tagFilters
}

// NewTagsQuery creates a tags query bound to client.
func NewTagsQuery(client *Client) *TagsQuery {
	q := &TagsQuery{client: client}
	q.Pagination.self = q
	q.ItemDisplay.self = q
	q.SearchTerm.self = q

	return q
}

// WithSectionTerm restricts tags to a section id.
func (q *TagsQuery) WithSectionTerm(section string) *TagsQuery {
	q.filters.section = &section

	return q
}

// WithTypeTerm restricts tags to a tag type such as "keyword" or "contributor".
func (q *TagsQuery) WithTypeTerm(tagType string) *TagsQuery {
	q.filters.tagType = &tagType

	return q
}

// URL assembles the request URL without issuing it.
func (q *TagsQuery) URL() (string, error) {
	return q.client.buildURL(q.client.endpointURL(EndpointTags),
		&q.Pagination,
		&q.ItemDisplay,
		&q.SearchTerm,
		&q.filters,
	), nil
}

// Tags issues the query.
func (q *TagsQuery) Tags(ctx context.Context) (*TagsResponse, error) {
	url, err := q.URL()
	if err != nil {
		return nil, err
	}

	return execute[*TagsResponse](ctx, q.client, EndpointTags, url)
}

// SearchQuery searches content.
//
// Fragment order: Pagination, ItemDisplay, Refinement, SearchTerm, ResultFilter.
type SearchQuery struct {
	Pagination[*SearchQuery]
	ItemDisplay[*SearchQuery]
	Refinement[*SearchQuery]
	SearchTerm[*SearchQuery]
	ResultFilter[*SearchQuery]

	client *Client
}

// NewSearchQuery creates a content search bound to client.
func NewSearchQuery(client *Client) *SearchQuery {
	q := &SearchQuery{client: client}
	q.Pagination.self = q
	q.ItemDisplay.self = q
	q.Refinement.self = q
	q.SearchTerm.self = q
	q.ResultFilter.self = q

	return q
}

// URL assembles the request URL without issuing it.
func (q *SearchQuery) URL() (string, error) {
	return q.client.buildURL(q.client.endpointURL(EndpointSearch),
		&q.Pagination,
		&q.ItemDisplay,
		&q.Refinement,
		&q.SearchTerm,
		&q.ResultFilter,
	), nil
}

// Search issues the query.
func (q *SearchQuery) Search(ctx context.Context) (*SearchResponse, error) {
	url, err := q.URL()
	if err != nil {
		return nil, err
	}

	return execute[*SearchResponse](ctx, q.client, EndpointSearch, url)
}

// ItemQuery looks up a single item (content, section or tag) by URL.
//
// Fragment order: ItemDisplay, ResultFilter, Pagination, SearchTerm.
type ItemQuery struct {
	ItemDisplay[*ItemQuery]
	ResultFilter[*ItemQuery]
	Pagination[*ItemQuery]
	SearchTerm[*ItemQuery]

	client *Client
	// target is either an absolute item URL or, when relative is set, an
	// item id resolved against the base URL at assembly time.
	target   string
	relative bool
}

// NewItemQuery creates an item lookup bound to client.
func NewItemQuery(client *Client) *ItemQuery {
	q := &ItemQuery{client: client}
	q.ItemDisplay.self = q
	q.ResultFilter.self = q
	q.Pagination.self = q
	q.SearchTerm.self = q

	return q
}

// WithTargetURL sets the absolute URL of the item, as found in the api-url
// attribute of earlier results.
func (q *ItemQuery) WithTargetURL(itemURL string) *ItemQuery {
	q.target = itemURL
	q.relative = false

	return q
}

// WithItemID sets the item by id, e.g. "technology/2010/mar/05/example".
// The id is resolved against the client's base URL.
func (q *ItemQuery) WithItemID(id string) *ItemQuery {
	q.target = strings.TrimPrefix(id, "/")
	q.relative = true

	return q
}

// URL assembles the request URL without issuing it. It fails with
// ErrTargetURLRequired when no target was set.
func (q *ItemQuery) URL() (string, error) {
	if q.target == "" {
		return "", ErrTargetURLRequired
	}

	target := q.target
	if q.relative {
		target = q.client.config.BaseURL + "/" + q.target
	}

	return q.client.buildURL(target,
		&q.ItemDisplay,
		&q.ResultFilter,
		&q.Pagination,
		&q.SearchTerm,
	), nil
}

// Query issues the lookup.
func (q *ItemQuery) Query(ctx context.Context) (*ItemResponse, error) {
	url, err := q.URL()
	if err != nil {
		return nil, err
	}

	return execute[*ItemResponse](ctx, q.client, EndpointItem, url)
}
