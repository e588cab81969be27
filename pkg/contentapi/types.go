package contentapi

import (
	"time"
)

// Endpoint is the tag identifying which remote resource a query targets and
// which response shape it expects back.
type Endpoint string

// Endpoint tags understood by the remote API.
const (
	EndpointSections Endpoint = "sections"
	EndpointTags     Endpoint = "tags"
	EndpointSearch   Endpoint = "search"
	EndpointItem     Endpoint = "id"
)

// Valid reports whether e is one of the known endpoint tags.
func (e Endpoint) Valid() bool {
	switch e {
	case EndpointSections, EndpointTags, EndpointSearch, EndpointItem:
		return true
	default:
		return false
	}
}

// OrderBy values accepted by the order-by filter.
type OrderBy string

// Supported orderings.
const (
	OrderByNewest    OrderBy = "newest"
	OrderByOldest    OrderBy = "oldest"
	OrderByRelevance OrderBy = "relevance"
)

// Response is implemented by every typed result a query can return.
type Response interface {
	Endpoint() Endpoint
}

// ResponseStatus carries the attributes present on every response document.
type ResponseStatus struct {
	Status   string `json:"status"    yaml:"status"`
	UserTier string `json:"user_tier" yaml:"user_tier"`
}

// Paging represents pagination information.
type Paging struct {
	Total       int    `json:"total"        yaml:"total"`
	StartIndex  int    `json:"start_index"  yaml:"start_index"`
	PageSize    int    `json:"page_size"    yaml:"page_size"`
	CurrentPage int    `json:"current_page" yaml:"current_page"`
	Pages       int    `json:"pages"        yaml:"pages"`
	OrderBy     string `json:"order_by,omitempty" yaml:"order_by,omitempty"`
}

// HasNextPage reports whether another page follows the current one.
func (p Paging) HasNextPage() bool {
	return p.CurrentPage < p.Pages
}

// Content is a single piece of published content.
type Content struct {
	ID                 string            `json:"id"                   yaml:"id"`
	Type               string            `json:"type,omitempty"       yaml:"type,omitempty"`
	SectionID          string            `json:"section_id,omitempty" yaml:"section_id,omitempty"`
	SectionName        string            `json:"section_name,omitempty" yaml:"section_name,omitempty"`
	WebPublicationDate time.Time         `json:"web_publication_date" yaml:"web_publication_date"`
	WebTitle           string            `json:"web_title"            yaml:"web_title"`
	WebURL             string            `json:"web_url"              yaml:"web_url"`
	APIURL             string            `json:"api_url"              yaml:"api_url"`
	Fields             map[string]string `json:"fields,omitempty"     yaml:"fields,omitempty"`
	Tags               []Tag             `json:"tags,omitempty"       yaml:"tags,omitempty"`
	Factboxes          []Factbox         `json:"factboxes,omitempty"  yaml:"factboxes,omitempty"`
	MediaAssets        []MediaAsset      `json:"media_assets,omitempty" yaml:"media_assets,omitempty"`
}

// Field returns the named field, or an empty string when it was not requested.
func (c *Content) Field(name string) string {
	if c.Fields == nil {
		return ""
	}

	return c.Fields[name]
}

// Section is a top-level grouping of content.
type Section struct {
	ID       string `json:"id"        yaml:"id"`
	WebTitle string `json:"web_title" yaml:"web_title"`
	WebURL   string `json:"web_url"   yaml:"web_url"`
	APIURL   string `json:"api_url"   yaml:"api_url"`
}

// Tag classifies content (keywords, contributors, series and so on).
type Tag struct {
	ID          string `json:"id"                     yaml:"id"`
	Type        string `json:"type"                   yaml:"type"`
	WebTitle    string `json:"web_title"              yaml:"web_title"`
	WebURL      string `json:"web_url"                yaml:"web_url"`
	APIURL      string `json:"api_url"                yaml:"api_url"`
	SectionID   string `json:"section_id,omitempty"   yaml:"section_id,omitempty"`
	SectionName string `json:"section_name,omitempty" yaml:"section_name,omitempty"`
}

// Factbox is an auxiliary box of facts attached to content.
type Factbox struct {
	Type        string            `json:"type"                   yaml:"type"`
	Heading     string            `json:"heading,omitempty"      yaml:"heading,omitempty"`
	PictureFile string            `json:"picture_file,omitempty" yaml:"picture_file,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"       yaml:"fields,omitempty"`
}

// MediaAsset is a picture, video or audio file attached to content.
type MediaAsset struct {
	Type   string            `json:"type"             yaml:"type"`
	Rel    string            `json:"rel,omitempty"    yaml:"rel,omitempty"`
	Index  int               `json:"index,omitempty"  yaml:"index,omitempty"`
	File   string            `json:"file,omitempty"   yaml:"file,omitempty"`
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// RefinementGroup groups the refinements of one kind (keyword, contributor, ...).
type RefinementGroup struct {
	Type        string             `json:"type"        yaml:"type"`
	Refinements []RefinementOption `json:"refinements" yaml:"refinements"`
}

// RefinementOption is a suggested filter that narrows a search.
type RefinementOption struct {
	Count       int    `json:"count"        yaml:"count"`
	ID          string `json:"id"           yaml:"id"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	APIURL      string `json:"api_url"      yaml:"api_url"`
	RefinedURL  string `json:"refined_url"  yaml:"refined_url"`
}

// SectionsResponse is the result of a sections query.
type SectionsResponse struct {
	ResponseStatus `yaml:",inline"`

	Results []Section `json:"results" yaml:"results"`
}

// Endpoint implements Response.
func (r *SectionsResponse) Endpoint() Endpoint { return EndpointSections }

// TagsResponse is the result of a tags query.
type TagsResponse struct {
	ResponseStatus `yaml:",inline"`
	Paging         `yaml:",inline"`

	Results []Tag `json:"results" yaml:"results"`
}

// Endpoint implements Response.
func (r *TagsResponse) Endpoint() Endpoint { return EndpointTags }

// SearchResponse is the result of a content search.
type SearchResponse struct {
	ResponseStatus `yaml:",inline"`
	Paging         `yaml:",inline"`

	Results          []Content         `json:"results"                     yaml:"results"`
	RefinementGroups []RefinementGroup `json:"refinement_groups,omitempty" yaml:"refinement_groups,omitempty"`
}

// Endpoint implements Response.
func (r *SearchResponse) Endpoint() Endpoint { return EndpointSearch }

// ItemResponse is the result of a single-item lookup. Exactly one of Content,
// Section or Tag is set depending on what the item URL points at; section and
// tag items also list their latest content in Results.
type ItemResponse struct {
	ResponseStatus `yaml:",inline"`
	Paging         `yaml:",inline"`

	Content      *Content  `json:"content,omitempty"       yaml:"content,omitempty"`
	Section      *Section  `json:"section,omitempty"       yaml:"section,omitempty"`
	Tag          *Tag      `json:"tag,omitempty"           yaml:"tag,omitempty"`
	Results      []Content `json:"results,omitempty"       yaml:"results,omitempty"`
	EditorsPicks []Content `json:"editors_picks,omitempty" yaml:"editors_picks,omitempty"`
	StoryPackage []Content `json:"story_package,omitempty" yaml:"story_package,omitempty"`
	MostViewed   []Content `json:"most_viewed,omitempty"   yaml:"most_viewed,omitempty"`
}

// Endpoint implements Response.
func (r *ItemResponse) Endpoint() Endpoint { return EndpointItem }
