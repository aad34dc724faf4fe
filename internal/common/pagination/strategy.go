package pagination

// PaginationStrategy defines an interface for different pagination strategies.
// Handlers and services work against this interface so the two delivery
// modes (cursor for mobile infinite scroll, offset for web page numbers)
// share one code path.
type PaginationStrategy interface {
	// CalculateQuery returns the query parameters (offset, limit, cursor)
	// based on the pagination parameters.
	CalculateQuery(params Params) QueryParams

	// BuildMetadata constructs pagination metadata from query results.
	// hasMore and next are meaningful for the cursor strategy; total is
	// meaningful for the offset strategy.
	BuildMetadata(params Params, total int64, hasMore bool, next *Cursor) Metadata
}

// QueryParams represents the calculated query parameters for database queries.
type QueryParams struct {
	Offset int     // For offset-based pagination
	Limit  int     // For all strategies
	Cursor *Cursor // For cursor-based pagination (nil means first page)
}

// StrategyFor returns the strategy matching the resolved pagination mode.
func StrategyFor(mode Mode) PaginationStrategy {
	if mode == ModeOffset {
		return OffsetStrategy{}
	}
	return CursorStrategy{}
}

// OffsetStrategy implements traditional offset-based pagination.
type OffsetStrategy struct{}

// CalculateQuery calculates offset and limit for offset-based pagination.
func (s OffsetStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Offset: CalculateOffset(params.Page, params.Limit),
		Limit:  params.Limit,
	}
}

// BuildMetadata constructs metadata with totals for offset-based pagination.
func (s OffsetStrategy) BuildMetadata(params Params, total int64, _ bool, _ *Cursor) Metadata {
	totalPages := CalculateTotalPages(total, params.Limit)
	page := params.Page
	return Metadata{
		HasNext:    page < totalPages,
		Limit:      params.Limit,
		Total:      &total,
		Page:       &page,
		TotalPages: &totalPages,
	}
}

// CursorStrategy implements keyset pagination over opaque cursor tokens.
//
// The ordering contract for every cursor-paginated query is
// ORDER BY created_at DESC, id DESC, and the position predicate is the
// compound created_at < t OR (created_at = t AND id < id). A
// single-column cursor would drop or duplicate rows that share a
// timestamp under batch inserts.
type CursorStrategy struct{}

// CalculateQuery passes the cursor position through; no offset is used.
func (s CursorStrategy) CalculateQuery(params Params) QueryParams {
	return QueryParams{
		Limit:  params.Limit,
		Cursor: params.Cursor,
	}
}

// BuildMetadata constructs metadata for cursor-based pagination.
// No totals are populated: that is a contract, not an omission.
func (s CursorStrategy) BuildMetadata(params Params, _ int64, hasMore bool, next *Cursor) Metadata {
	md := Metadata{
		HasNext: hasMore,
		Limit:   params.Limit,
	}
	if hasMore && next != nil {
		token := next.Encode()
		md.NextCursor = &token
	}
	return md
}
