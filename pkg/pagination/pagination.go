package pagination

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// Params selects one page of a listing. Page is 1-based.
type Params struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// Default returns the first page with the default size
func Default() *Params {
	return &Params{Page: 1, PerPage: DefaultPerPage}
}

// New builds params from raw query values, normalized
func New(page, perPage int) *Params {
	return (&Params{Page: page, PerPage: perPage}).Normalize()
}

// Normalize clamps the params into range and returns p
func (p *Params) Normalize() *Params {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
	return p
}

// Offset is the number of rows to skip
func (p *Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Limit is the number of rows to fetch
func (p *Params) Limit() int {
	return p.PerPage
}

// Meta describes where a page sits in the full listing
type Meta struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// NewMeta computes page metadata for total rows
func NewMeta(p *Params, total int64) *Meta {
	perPage := int64(p.PerPage)
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + perPage - 1) / perPage)
	}
	return &Meta{
		CurrentPage: p.Page,
		PerPage:     p.PerPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     p.Page < totalPages,
		HasPrev:     p.Page > 1,
	}
}

// Result is one page of items plus its metadata.
// Items is never nil so it encodes as [].
type Result[T any] struct {
	Items      []T   `json:"items"`
	Pagination *Meta `json:"pagination"`
}

// NewResult wraps a page of items
func NewResult[T any](items []T, p *Params, total int64) *Result[T] {
	if items == nil {
		items = []T{}
	}
	return &Result[T]{
		Items:      items,
		Pagination: NewMeta(p, total),
	}
}

// OrDefault normalizes p, substituting the default page when p is nil
func OrDefault(p *Params) *Params {
	if p == nil {
		return Default()
	}
	return p.Normalize()
}
