// Package pagination provides request and response types for paginated
// listings.
//
// Request carries page number, page size, sorting and an optional filter
// mode; Response wraps a page of content with totals. Both are meant to be
// embedded in transport-level request/response structs.
package pagination

// Request represents incoming pagination parameters.
// Embed it in list request structs to get uniform paging behavior.
type Request struct {
	PageNumber int    `query:"page_number" json:"page_number"`
	PageSize   int    `query:"page_size"   json:"page_size"`
	SortBy     string `query:"sort_by"     json:"sort_by,omitempty"`
	SortDir    string `query:"sort_dir"    json:"sort_dir,omitempty"`
	FilterType string `query:"filter_type" json:"filter_type,omitempty"`
}

// Normalize applies defaults and constraints.
func (r *Request) Normalize(opts ...Option) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if r.PageNumber <= 0 {
		r.PageNumber = 1
	}
	if r.PageSize <= 0 {
		r.PageSize = o.DefaultPageSize
	}
	if r.PageSize > o.MaxPageSize {
		r.PageSize = o.MaxPageSize
	}
	if r.SortDir != "asc" && r.SortDir != "desc" {
		r.SortDir = "asc"
	}
}

// Offset returns the offset value.
func (r *Request) Offset() int {
	return (r.PageNumber - 1) * r.PageSize
}

// Limit returns the limit value.
func (r *Request) Limit() int {
	return r.PageSize
}

// Response represents one page of content with pagination metadata.
type Response[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"page_number"`
	PageSize      int   `json:"page_size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// HasNext reports whether a page exists after the current one.
func (r Response[T]) HasNext() bool {
	return r.PageNumber < r.TotalPages
}

// HasPrev reports whether a page exists before the current one.
func (r Response[T]) HasPrev() bool {
	return r.PageNumber > 1
}

// NewResponse creates a paginated response from items and total count.
func NewResponse[T any](items []T, totalElements int64, req Request) Response[T] {
	if items == nil {
		items = make([]T, 0)
	}

	totalPages := 0
	if req.PageSize > 0 {
		totalPages = int(totalElements) / req.PageSize
		if int(totalElements)%req.PageSize > 0 {
			totalPages++
		}
	}

	return Response[T]{
		Content:       items,
		PageNumber:    req.PageNumber,
		PageSize:      req.PageSize,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}
