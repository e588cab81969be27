package document

import (
	"encoding/xml"
	"time"

	"github.com/araddon/dateparse"
	"github.com/fivetwenty-io/contentapi/pkg/contentapi"
)

// wireResponse mirrors the <response> root element.
type wireResponse struct {
	XMLName     xml.Name `xml:"response"`
	Status      string   `xml:"status,attr"`
	Message     string   `xml:"message,attr"`
	UserTier    string   `xml:"user-tier,attr"`
	Total       int      `xml:"total,attr"`
	StartIndex  int      `xml:"start-index,attr"`
	PageSize    int      `xml:"page-size,attr"`
	CurrentPage int      `xml:"current-page,attr"`
	Pages       int      `xml:"pages,attr"`
	OrderBy     string   `xml:"order-by,attr"`

	Results          wireResults           `xml:"results"`
	RefinementGroups []wireRefinementGroup `xml:"refinement-groups>refinement-group"`

	Content      *wireContent  `xml:"content"`
	Section      *wireSection  `xml:"section"`
	Tag          *wireTag      `xml:"tag"`
	EditorsPicks []wireContent `xml:"editors-picks>content"`
	StoryPackage []wireContent `xml:"story-package>content"`
	MostViewed   []wireContent `xml:"most-viewed>content"`
}

type wireResults struct {
	Content  []wireContent `xml:"content"`
	Sections []wireSection `xml:"section"`
	Tags     []wireTag     `xml:"tag"`
}

type wireField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

type wireContent struct {
	ID                 string        `xml:"id,attr"`
	Type               string        `xml:"type,attr"`
	SectionID          string        `xml:"section-id,attr"`
	SectionName        string        `xml:"section-name,attr"`
	WebPublicationDate string        `xml:"web-publication-date,attr"`
	WebTitle           string        `xml:"web-title,attr"`
	WebURL             string        `xml:"web-url,attr"`
	APIURL             string        `xml:"api-url,attr"`
	Fields             []wireField   `xml:"fields>field"`
	Tags               []wireTag     `xml:"tags>tag"`
	Factboxes          []wireFactbox `xml:"factboxes>factbox"`
	MediaAssets        []wireMedia   `xml:"media-assets>asset"`
}

type wireSection struct {
	ID       string `xml:"id,attr"`
	WebTitle string `xml:"web-title,attr"`
	WebURL   string `xml:"web-url,attr"`
	APIURL   string `xml:"api-url,attr"`
}

type wireTag struct {
	ID          string `xml:"id,attr"`
	Type        string `xml:"type,attr"`
	WebTitle    string `xml:"web-title,attr"`
	WebURL      string `xml:"web-url,attr"`
	APIURL      string `xml:"api-url,attr"`
	SectionID   string `xml:"section-id,attr"`
	SectionName string `xml:"section-name,attr"`
}

type wireFactbox struct {
	Type        string      `xml:"type,attr"`
	Heading     string      `xml:"heading,attr"`
	PictureFile string      `xml:"picture-file,attr"`
	Fields      []wireField `xml:"fields>field"`
}

type wireMedia struct {
	Type   string      `xml:"type,attr"`
	Rel    string      `xml:"rel,attr"`
	Index  int         `xml:"index,attr"`
	File   string      `xml:"file,attr"`
	Fields []wireField `xml:"fields>field"`
}

type wireRefinementGroup struct {
	Type        string           `xml:"type,attr"`
	Refinements []wireRefinement `xml:"refinements>refinement"`
}

type wireRefinement struct {
	Count       int    `xml:"count,attr"`
	ID          string `xml:"id,attr"`
	DisplayName string `xml:"display-name,attr"`
	APIURL      string `xml:"api-url,attr"`
	RefinedURL  string `xml:"refined-url,attr"`
}

func (r *wireResponse) status() contentapi.ResponseStatus {
	return contentapi.ResponseStatus{Status: r.Status, UserTier: r.UserTier}
}

func (r *wireResponse) paging() contentapi.Paging {
	return contentapi.Paging{
		Total:       r.Total,
		StartIndex:  r.StartIndex,
		PageSize:    r.PageSize,
		CurrentPage: r.CurrentPage,
		Pages:       r.Pages,
		OrderBy:     r.OrderBy,
	}
}

func fieldMap(fields []wireField) map[string]string {
	if len(fields) == 0 {
		return nil
	}

	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Value
	}

	return out
}

func (s wireSection) toSection() contentapi.Section {
	return contentapi.Section{ID: s.ID, WebTitle: s.WebTitle, WebURL: s.WebURL, APIURL: s.APIURL}
}

func (t wireTag) toTag() contentapi.Tag {
	return contentapi.Tag{
		ID:          t.ID,
		Type:        t.Type,
		WebTitle:    t.WebTitle,
		WebURL:      t.WebURL,
		APIURL:      t.APIURL,
		SectionID:   t.SectionID,
		SectionName: t.SectionName,
	}
}

// publicationDate parses an RFC 3339 timestamp, falling back to dateparse
// for other layouts. Dates without a zone are UTC. An unparseable date is
// left zero rather than failing the whole document.
func publicationDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}

	published, err := time.Parse(time.RFC3339, value)
	if err == nil {
		return published
	}

	published, err = dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}
	}

	return published
}

func (c wireContent) toContent() contentapi.Content {
	content := contentapi.Content{
		ID:                 c.ID,
		Type:               c.Type,
		SectionID:          c.SectionID,
		SectionName:        c.SectionName,
		WebPublicationDate: publicationDate(c.WebPublicationDate),
		WebTitle:           c.WebTitle,
		WebURL:             c.WebURL,
		APIURL:             c.APIURL,
		Fields:             fieldMap(c.Fields),
	}

	for _, t := range c.Tags {
		content.Tags = append(content.Tags, t.toTag())
	}

	for _, f := range c.Factboxes {
		content.Factboxes = append(content.Factboxes, contentapi.Factbox{
			Type:        f.Type,
			Heading:     f.Heading,
			PictureFile: f.PictureFile,
			Fields:      fieldMap(f.Fields),
		})
	}

	for _, m := range c.MediaAssets {
		content.MediaAssets = append(content.MediaAssets, contentapi.MediaAsset{
			Type:   m.Type,
			Rel:    m.Rel,
			Index:  m.Index,
			File:   m.File,
			Fields: fieldMap(m.Fields),
		})
	}

	return content
}

func contentList(wire []wireContent) []contentapi.Content {
	if len(wire) == 0 {
		return nil
	}

	out := make([]contentapi.Content, 0, len(wire))

	for _, w := range wire {
		out = append(out, w.toContent())
	}

	return out
}

func refinementGroups(wire []wireRefinementGroup) []contentapi.RefinementGroup {
	if len(wire) == 0 {
		return nil
	}

	out := make([]contentapi.RefinementGroup, 0, len(wire))

	for _, g := range wire {
		group := contentapi.RefinementGroup{Type: g.Type}
		for _, r := range g.Refinements {
			group.Refinements = append(group.Refinements, contentapi.RefinementOption{
				Count:       r.Count,
				ID:          r.ID,
				DisplayName: r.DisplayName,
				APIURL:      r.APIURL,
				RefinedURL:  r.RefinedURL,
			})
		}

		out = append(out, group)
	}

	return out
}
