package core

// Page is one page of a paginated result set. Page numbers are 0-based.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewPage assembles a page and validates the requested page number against
// the total. A request beyond the last page of a non-empty result set fails
// with PageOutOfBoundsError.
func NewPage[T any](items []T, number, size int, total int64) (*Page[T], error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	if totalPages > 0 && number >= totalPages {
		return nil, &PageOutOfBoundsError{Requested: number, TotalPages: totalPages}
	}
	return &Page[T]{
		Items:         items,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

const DefaultPageSize = 10
