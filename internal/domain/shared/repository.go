package shared

import (
	"math"
	"strconv"
	"strings"
)

// Pagination defaults and bounds for list endpoints
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter represents query filter options
type Filter struct {
	Page   int
	Limit  int
	Search string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:  DefaultPage,
		Limit: DefaultLimit,
	}
}

// ParseFilter coerces loosely typed query values into a Filter.
// Missing, non-numeric or non-positive page/limit fall back to defaults,
// limit is clamped to MaxLimit and the search text is trimmed.
func ParseFilter(q, page, limit string) Filter {
	f := DefaultFilter()
	f.Search = strings.TrimSpace(q)
	if p, err := strconv.Atoi(strings.TrimSpace(page)); err == nil && p >= 1 {
		f.Page = p
	}
	if l, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && l >= 1 {
		f.Limit = min(l, MaxLimit)
	}
	return f
}

// Offset returns the number of rows to skip
func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
}

// NewPaginated creates a new paginated result, pages = ceil(total/limit)
func NewPaginated[T any](items []T, total int64, filter Filter) Paginated[T] {
	if items == nil {
		items = []T{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Paginated[T]{
		Items: items,
		Total: total,
		Page:  filter.Page,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}
}
