package utils

import "github.com/deskhub/deskhub/internal/shared/constants"

// Paginate clips items to the 1-indexed page: items[(page-1)*size : page*size].
// page and size default to 1 and 10 when not positive. Pages past the end
// yield an empty, non-nil slice.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 {
		page = constants.DefaultPage
	}
	if size < 1 {
		size = constants.DefaultPageSize
	}

	start, end := ApplyPagination(len(items), page, size)
	return items[start:end:end]
}

// ApplyPagination calculates slice indices for pagination.
// Returns (start, end) indices for slicing: slice[start:end]
func ApplyPagination(total, page, pageSize int) (start, end int) {
	start = (page - 1) * pageSize
	end = start + pageSize

	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return start, end
}

// TotalPages calculates total pages for a given total count.
func TotalPages(total int64, pageSize int) int {
	if total == 0 || pageSize <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
