package domain

// Pagination constants
const (
	DefaultPageSize = 25
	MaxPageSize     = 1000
)

// ValidatePagination normalizes page and page size. Page numbers start at 1;
// clamping the page against the filtered total is left to the caller because
// only it knows the total.
func ValidatePagination(page, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	if page <= 0 {
		page = 1
	}

	return page, pageSize
}
