package contentapi

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fivetwenty-io/contentapi/internal/constants"
)

// fragmenter is implemented by every capability mixin. fragment renders the
// set parameters as "&name=value" segments in the mixin's fixed field order
// and has no side effects.
type fragmenter interface {
	fragment() string
}

// fragmentWriter accumulates "&name=value" segments. Values are written as
// given; callers encode beforehand where the API expects it.
type fragmentWriter struct {
	strings.Builder
}

func (w *fragmentWriter) param(name string, value *string) {
	if value == nil {
		return
	}

	w.WriteByte('&')
	w.WriteString(name)
	w.WriteByte('=')
	w.WriteString(*value)
}

func (w *fragmentWriter) intParam(name string, value *int) {
	if value == nil {
		return
	}

	s := strconv.Itoa(*value)
	w.param(name, &s)
}

// Pagination owns the page-size and page parameters. Its setters return the
// query they are embedded in so calls can be chained.
type Pagination[Q any] struct {
	self     Q
	pageSize *string
	page     *int
}

// WithPageSize sets page-size.
func (p *Pagination[Q]) WithPageSize(size int) Q {
	s := strconv.Itoa(size)
	p.pageSize = &s

	return p.self
}

// WithPageSizeText sets page-size from its textual form.
func (p *Pagination[Q]) WithPageSizeText(size string) Q {
	p.pageSize = &size

	return p.self
}

// WithPage sets page (1-based).
func (p *Pagination[Q]) WithPage(page int) Q {
	p.page = &page

	return p.self
}

func (p *Pagination[Q]) fragment() string {
	var w fragmentWriter
	w.param("page-size", p.pageSize)
	w.intParam("page", p.page)

	return w.String()
}

// ItemDisplay owns the parameters selecting which extra data each item carries.
type ItemDisplay[Q any] struct {
	self          Q
	showFields    *string
	showTags      *string
	showFactboxes *string
	showMedia     *string
}

// WithShowFields sets show-fields. Several names are joined with commas;
// "all" requests every field. Calling the list setters with no values
// clears the parameter.
func (d *ItemDisplay[Q]) WithShowFields(fields ...string) Q {
	d.showFields = joined(fields)

	return d.self
}

// WithShowTags sets show-tags, e.g. "all", "keyword" or "contributor,tone".
func (d *ItemDisplay[Q]) WithShowTags(tagTypes ...string) Q {
	d.showTags = joined(tagTypes)

	return d.self
}

// WithShowFactboxes sets show-factboxes.
func (d *ItemDisplay[Q]) WithShowFactboxes(types ...string) Q {
	d.showFactboxes = joined(types)

	return d.self
}

// WithShowMedia sets show-media, e.g. "picture" or "all".
func (d *ItemDisplay[Q]) WithShowMedia(types ...string) Q {
	d.showMedia = joined(types)

	return d.self
}

func (d *ItemDisplay[Q]) fragment() string {
	var w fragmentWriter
	w.param("show-fields", d.showFields)
	w.param("show-tags", d.showTags)
	w.param("show-factboxes", d.showFactboxes)
	w.param("show-media", d.showMedia)

	return w.String()
}

// Refinement owns the parameters requesting search refinements.
type Refinement[Q any] struct {
	self            Q
	showRefinements *string
	refinementSize  *int
}

// WithShowRefinements sets show-refinements, e.g. "all" or "keyword,blog".
func (r *Refinement[Q]) WithShowRefinements(groups ...string) Q {
	r.showRefinements = joined(groups)

	return r.self
}

// WithRefinementSize sets refinement-size.
func (r *Refinement[Q]) WithRefinementSize(size int) Q {
	r.refinementSize = &size

	return r.self
}

func (r *Refinement[Q]) fragment() string {
	var w fragmentWriter
	w.param("show-refinements", r.showRefinements)
	w.intParam("refinement-size", r.refinementSize)

	return w.String()
}

// SearchTerm owns the free-text q parameter. The term is percent-encoded
// once, when it is set.
type SearchTerm[Q any] struct {
	self Q
	q    *string
}

// WithQueryTerm sets q. "hello world" renders as "&q=hello+world".
func (s *SearchTerm[Q]) WithQueryTerm(term string) Q {
	encoded := url.QueryEscape(term)
	s.q = &encoded

	return s.self
}

func (s *SearchTerm[Q]) fragment() string {
	var w fragmentWriter
	w.param("q", s.q)

	return w.String()
}

// ResultFilter owns the parameters that restrict and order results.
type ResultFilter[Q any] struct {
	self     Q
	section  *string
	tag      *string
	orderBy  *string
	fromDate *string
	toDate   *string
}

// WithSection restricts results to a section id such as "technology".
func (f *ResultFilter[Q]) WithSection(section string) Q {
	f.section = &section

	return f.self
}

// WithTag restricts results to content carrying a tag id such as "sport/cricket".
func (f *ResultFilter[Q]) WithTag(tag string) Q {
	f.tag = &tag

	return f.self
}

// WithOrderBy sets order-by.
func (f *ResultFilter[Q]) WithOrderBy(order OrderBy) Q {
	s := string(order)
	f.orderBy = &s

	return f.self
}

// WithFromDate sets from-date, formatted YYYY-MM-DD.
func (f *ResultFilter[Q]) WithFromDate(date string) Q {
	f.fromDate = &date

	return f.self
}

// WithToDate sets to-date, formatted YYYY-MM-DD.
func (f *ResultFilter[Q]) WithToDate(date string) Q {
	f.toDate = &date

	return f.self
}

// WithFromTime sets from-date from the calendar date of t.
func (f *ResultFilter[Q]) WithFromTime(t time.Time) Q {
	return f.WithFromDate(t.Format(constants.DateLayout))
}

// WithToTime sets to-date from the calendar date of t.
func (f *ResultFilter[Q]) WithToTime(t time.Time) Q {
	return f.WithToDate(t.Format(constants.DateLayout))
}

func (f *ResultFilter[Q]) fragment() string {
	var w fragmentWriter
	w.param("section", f.section)
	w.param("tag", f.tag)
	w.param("order-by", f.orderBy)
	w.param("from-date", f.fromDate)
	w.param("to-date", f.toDate)

	return w.String()
}

// joined renders a list parameter. An empty list leaves the parameter unset.
func joined(values []string) *string {
	if len(values) == 0 {
		return nil
	}

	s := strings.Join(values, ",")

	return &s
}
