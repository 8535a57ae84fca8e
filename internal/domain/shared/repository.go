package shared

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Filter carries paging, ordering and search options for list queries.
// Repositories validate OrderBy against their own whitelist.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns the first page, newest first
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: defaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  map[string]interface{}{},
	}
}

// Offset returns the row offset for the filter's page
func (f Filter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the page size clamped to [1, maxPageSize]
func (f Filter) Limit() int {
	switch {
	case f.PageSize <= 0:
		return defaultPageSize
	case f.PageSize > maxPageSize:
		return maxPageSize
	default:
		return f.PageSize
	}
}
