package pagination

// Metadata contains pagination metadata included in API responses.
//
// Both pagination modes fill HasNext and Limit. Cursor-mode responses
// additionally carry NextCursor and deliberately never carry totals:
// computing a COUNT would defeat the purpose of keyset pagination.
// Offset-mode responses always carry Total, Page and TotalPages.
type Metadata struct {
	HasNext    bool    `json:"has_next"`              // More items exist after this page
	NextCursor *string `json:"next_cursor"`           // Token for the next page (cursor mode; null when exhausted)
	Limit      int     `json:"limit"`                 // Items per page
	Total      *int64  `json:"total,omitempty"`       // Total items across all pages (offset mode only)
	Page       *int    `json:"page,omitempty"`        // Current page number, 1-based (offset mode only)
	TotalPages *int    `json:"total_pages,omitempty"` // Total number of pages (offset mode only)
}
