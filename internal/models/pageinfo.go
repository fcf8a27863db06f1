package models

// PageInfo describes an offset-paginated window. TotalCount is computed
// against the same filter predicate as the page slice.
type PageInfo struct {
	CurrentPage     int   `json:"current_page"`
	PerPage         int   `json:"per_page"`
	TotalCount      int64 `json:"total_count"`
	TotalPages      int   `json:"total_pages"`
	HasNextPage     bool  `json:"has_next_page"`
	HasPreviousPage bool  `json:"has_previous_page"`
}

// NewPageInfo derives the page metadata for a window. page and perPage are
// assumed to be already clamped by the caller (page >= 1, perPage >= 1).
func NewPageInfo(page, perPage int, total int64) PageInfo {
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	return PageInfo{
		CurrentPage:     page,
		PerPage:         perPage,
		TotalCount:      total,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1 && total > 0,
	}
}
