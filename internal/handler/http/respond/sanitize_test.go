package respond

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		want     string
		mustMiss string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name:     "database DSN password",
			err:      fmt.Errorf("connect: postgres://app:s3cret@db:5432/kitchen"),
			want:     "connect: postgres://app:****@db:5432/kitchen",
			mustMiss: "s3cret",
		},
		{
			name:     "bearer token",
			err:      errors.New("call failed: Bearer eyJhbGciOiJIUzI1NiJ9.payload.sig rejected"),
			mustMiss: "eyJhbGciOiJIUzI1NiJ9",
		},
		{
			name: "plain error untouched",
			err:  errors.New("recipe not found"),
			want: "recipe not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeError(tt.err)
			if tt.want != "" && got != tt.want {
				t.Errorf("SanitizeError() = %q, want %q", got, tt.want)
			}
			if tt.mustMiss != "" && strings.Contains(got, tt.mustMiss) {
				t.Errorf("sanitized message still contains secret: %q", got)
			}
		})
	}
}
