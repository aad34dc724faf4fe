// Package pagination provides a reusable pagination framework with an
// offset strategy (page numbers with totals, used by the web client) and
// a keyset cursor strategy (opaque tokens, used by mobile infinite scroll).
package pagination

import (
	"os"
	"strconv"
)

// Config bounds pagination parameters for every list endpoint.
type Config struct {
	// DefaultPage is used when offset mode requests omit the page.
	DefaultPage int
	// DefaultLimit is used when requests omit the limit.
	DefaultLimit int
	// MaxLimit is the hard ceiling; requests above it are rejected.
	MaxLimit int
}

// DefaultConfig returns page=1, limit=20, max=100.
func DefaultConfig() Config {
	return Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT
// and PAGINATION_MAX_LIMIT, keeping the defaults for unset or
// unparseable values.
func LoadFromEnv() Config {
	return Config{
		DefaultPage:  intFromEnv("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: intFromEnv("PAGINATION_DEFAULT_LIMIT", 20),
		MaxLimit:     intFromEnv("PAGINATION_MAX_LIMIT", 100),
	}
}

func intFromEnv(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return v
}
