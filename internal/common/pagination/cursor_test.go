package pagination

import (
	"testing"
	"time"
)

func TestCursor_EncodeDecode_RoundTrip(t *testing.T) {
	// Sub-millisecond precision must survive the round trip exactly;
	// truncation here is a correctness bug, not a cosmetic one.
	ts := time.Date(2025, 11, 3, 14, 55, 2, 123456000, time.UTC)
	c := Cursor{Time: ts, ID: 9241}

	got := DecodeCursor(c.Encode())
	if got == nil {
		t.Fatal("DecodeCursor returned nil for a token produced by Encode")
	}
	if !got.Time.Equal(ts) {
		t.Fatalf("time mismatch: got %v, want %v", got.Time, ts)
	}
	if got.ID != c.ID {
		t.Fatalf("id mismatch: got %d, want %d", got.ID, c.ID)
	}
}

func TestCursor_EncodeDecode_MicrosecondPrecision(t *testing.T) {
	a := time.Date(2025, 1, 1, 0, 0, 0, 1000, time.UTC)    // 1µs
	b := time.Date(2025, 1, 1, 0, 0, 0, 2000, time.UTC)    // 2µs
	ca := Cursor{Time: a, ID: 1}
	cb := Cursor{Time: b, ID: 1}
	if ca.Encode() == cb.Encode() {
		t.Fatal("cursors one microsecond apart must encode differently")
	}
}

func TestDecodeCursor_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"no separator", "MTIzNDU2"},              // "123456"
		{"bad timestamp", "YWJjOjQy"},             // "abc:42"
		{"bad id", "MTc2MjE4MTcwMjAwMDAwMDp4eXo"}, // "1762181702000000:xyz"
		{"negative id", "MTc2MjE4MTcwMjAwMDAwMDotMQ"}, // "1762181702000000:-1"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Malformed tokens must decode to nil ("first page"), never panic
			// or surface an error.
			if got := DecodeCursor(tt.token); got != nil {
				t.Fatalf("DecodeCursor(%q) = %v, want nil", tt.token, got)
			}
		})
	}
}

func TestDecodeCursor_ZeroTime(t *testing.T) {
	c := Cursor{Time: time.UnixMicro(0).UTC(), ID: 0}
	got := DecodeCursor(c.Encode())
	if got == nil {
		t.Fatal("epoch cursor should round-trip")
	}
	if !got.Time.Equal(c.Time) || got.ID != 0 {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, c)
	}
}
