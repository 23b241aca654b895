package domain

import "math"

// MaxPage is the highest page number a list query accepts. Larger requests are
// clamped to it and simply return an empty page.
const MaxPage = math.MaxInt32

// PaginationParams holds 1-indexed offset pagination for list queries.
type PaginationParams struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Offset returns the 0-based row offset of the current page. It saturates at
// math.MaxInt instead of overflowing.
func (p PaginationParams) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	size := p.Limit()
	if p.Page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (p.Page - 1) * size
}

// Limit returns the page size, at least 1.
func (p PaginationParams) Limit() int {
	if p.PageSize < 1 {
		return 1
	}
	return p.PageSize
}
