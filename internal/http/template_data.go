package httpx

import (
	"net/http"
)

// PaginationData describes one page of a list view. TotalCount may be zero
// when the upstream response does not carry a total.
type PaginationData struct {
	Page       int
	PageSize   int
	HasPrev    bool
	HasNext    bool
	StartIndex int
	EndIndex   int
	TotalCount int
	BasePath   string
}

// TemplateDataBuilder assembles the data map handed to a page template,
// starting from the session-derived base fields.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData starts a builder seeded with the page metadata and the
// viewer's session state.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta), r: r}
}

// WithPagination adds the paging fields plus PrevURL/NextURL links that keep
// the request's filter query parameters.
func (b *TemplateDataBuilder) WithPagination(opts PaginationData) *TemplateDataBuilder {
	b.data["Page"] = opts.Page
	b.data["PageSize"] = opts.PageSize
	b.data["HasPrev"] = opts.HasPrev
	b.data["HasNext"] = opts.HasNext
	b.data["StartIndex"] = opts.StartIndex
	b.data["EndIndex"] = opts.EndIndex
	if opts.TotalCount > 0 {
		b.data["TotalCount"] = opts.TotalCount
	}

	query := b.r.URL.Query()
	if opts.HasPrev {
		b.data["PrevURL"] = buildPageURL(opts.BasePath, query,
			pageOpts{Page: opts.Page - 1, PageSize: opts.PageSize})
	}
	if opts.HasNext {
		b.data["NextURL"] = buildPageURL(opts.BasePath, query,
			pageOpts{Page: opts.Page + 1, PageSize: opts.PageSize})
	}
	return b
}

// WithError sets the banner error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors attaches per-field validation messages. An empty map is
// dropped so templates can gate on {{if .Errors}}.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With sets an arbitrary template field.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the finished map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}
