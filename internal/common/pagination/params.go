package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Mode selects how a listing request is paginated.
type Mode string

const (
	// ModeCursor is keyset pagination: stable under concurrent inserts,
	// no totals, recency ordering only.
	ModeCursor Mode = "cursor"
	// ModeOffset is page-number pagination: totals are computed and any
	// ranking strategy may be applied.
	ModeOffset Mode = "offset"
)

// Params represents pagination query parameters from an HTTP request.
//
// Mode resolution: a cursor parameter (even a malformed one) selects
// cursor mode; otherwise an explicit page parameter selects offset mode;
// otherwise the request defaults to cursor mode, first page.
type Params struct {
	Mode   Mode
	Page   int     // 1-based page number (offset mode)
	Limit  int     // Items per page
	Cursor *Cursor // Position (cursor mode); nil means first page
}

// ParseQueryParams parses pagination parameters from HTTP request query string.
//
// Query parameters:
//   - cursor: opaque keyset token; malformed values degrade to first page
//   - page: page number (must be a positive integer)
//   - limit: items per page (must be between 1 and config.MaxLimit)
//
// Returns an error only for invalid page/limit values; cursor errors are
// never surfaced.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Mode:  ModeCursor,
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	q := r.URL.Query()

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	if cursorStr, ok := q["cursor"]; ok && len(cursorStr) > 0 {
		// Cursor presence wins over page. A token that fails to decode is
		// treated as "first page", not as an error.
		params.Mode = ModeCursor
		params.Cursor = DecodeCursor(cursorStr[0])
		return params, nil
	}

	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Mode = ModeOffset
		params.Page = page
	}

	return params, nil
}
