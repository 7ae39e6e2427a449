package domain

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// Pagination carries paging params. Page 0 means no paging.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Normalize clamps the page size the way list endpoints expect.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		return Pagination{}
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

func (p Pagination) Enabled() bool { return p.Page > 0 }

func (p Pagination) Offset() int {
	if p.Page <= 0 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
