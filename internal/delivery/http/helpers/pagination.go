package helpers

import (
	"errors"
	"net/http"
	"strconv"

	"conferencedirectory/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ParsePagination reads page and pageSize from the query string. Missing,
// malformed or non-positive values fall back to the defaults; values above the
// limits, including ones too large for an int, are clamped to domain.MaxPage
// and MaxPageSize.
func ParsePagination(r *http.Request) domain.PaginationParams {
	q := r.URL.Query()
	return domain.PaginationParams{
		Page:     positiveParam(q.Get("page"), DefaultPage, domain.MaxPage),
		PageSize: positiveParam(q.Get("pageSize"), DefaultPageSize, MaxPageSize),
	}
}

func positiveParam(raw string, def, limit int) int {
	n, err := strconv.Atoi(raw)
	switch {
	case errors.Is(err, strconv.ErrRange) && n > 0:
		return limit
	case err != nil || n < 1:
		return def
	default:
		return min(n, limit)
	}
}
