package pagination

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to at least 1 and the limit to [1, MaxLimit], applying DefaultLimit when unset.
func Normalize(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset is the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the number of pages needed to hold total rows.
func (p Page) TotalPages(total int) int {
	if total <= 0 || p.Limit <= 0 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
