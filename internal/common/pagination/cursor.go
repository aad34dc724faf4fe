package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Cursor is a keyset position: the created_at timestamp and id of the
// last row the client has seen. The wire form is
// base64url("<unix-µs>:<id>") without padding. The token is opaque to
// clients; its layout is an implementation detail that may change.
//
// Microsecond precision matters: Postgres timestamptz stores µs, and a
// cursor truncated to ms would re-serve or skip rows created within the
// same millisecond.
type Cursor struct {
	Time time.Time
	ID   int64
}

// Encode serializes the cursor into its opaque wire token.
func (c Cursor) Encode() string {
	raw := fmt.Sprintf("%d:%d", c.Time.UnixMicro(), c.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a wire token back into a position. Malformed
// tokens (bad base64, missing separator, non-numeric or negative parts)
// decode to nil, which callers treat as "first page". A stale or
// tampered cursor degrades the request, it never fails it.
func DecodeCursor(token string) *Cursor {
	if token == "" {
		return nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil
	}
	ts, idStr, ok := strings.Cut(string(raw), ":")
	if !ok {
		return nil
	}
	micros, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return nil
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id < 0 {
		return nil
	}
	return &Cursor{Time: time.UnixMicro(micros).UTC(), ID: id}
}
