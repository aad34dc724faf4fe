package pagination

// Response is the unified paginated response envelope.
// T is the type of data items (e.g., recipe DTOs, saved-recipe DTOs).
// Every listing endpoint returns this shape regardless of pagination
// mode; the mode only decides which Metadata fields are populated.
type Response[T any] struct {
	Items      []T      `json:"items"`      // Data items for the current page
	Pagination Metadata `json:"pagination"` // Pagination metadata
}

// NewResponse creates a new paginated response with items and metadata.
func NewResponse[T any](items []T, metadata Metadata) Response[T] {
	return Response[T]{
		Items:      items,
		Pagination: metadata,
	}
}
