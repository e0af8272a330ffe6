package models

// Pagination defaults
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PaginationResult holds pagination metadata
type PaginationResult struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationResult creates a pagination result
func NewPaginationResult(page, pageSize int, totalCount int64) PaginationResult {
	totalPages := int(totalCount) / pageSize
	if int(totalCount)%pageSize > 0 {
		totalPages++
	}

	return PaginationResult{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// ValidateAndSetDefaults validates pagination parameters and sets defaults
func ValidateAndSetDefaults(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = DefaultPageSize
	}
	if *pageSize > MaxPageSize {
		*pageSize = MaxPageSize
	}
}

// CalculateOffset calculates the offset of the first item on a page
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// Paginate returns the items on the requested page. Page and size must
// already be normalized with ValidateAndSetDefaults.
func Paginate[T any](items []T, page, pageSize int) []T {
	// Pages past the end are empty; checking first keeps the offset from overflowing
	if page < 1 || pageSize < 1 || page-1 > len(items)/pageSize {
		return items[len(items):]
	}

	start := CalculateOffset(page, pageSize)
	if start > len(items) {
		start = len(items)
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
