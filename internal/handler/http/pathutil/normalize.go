// Package pathutil provides URL path helpers for the HTTP layer.
package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// publicID matches the UUID form used for recipe public identifiers.
const publicID = `[0-9a-fA-F-]{36}`

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/recipes/` + publicID + `$`), Template: "/recipes/:id"},
	{Pattern: regexp.MustCompile(`^/recipes/` + publicID + `/variants$`), Template: "/recipes/:id/variants"},
	{Pattern: regexp.MustCompile(`^/recipes/` + publicID + `/family$`), Template: "/recipes/:id/family"},
	{Pattern: regexp.MustCompile(`^/recipes/` + publicID + `/logs$`), Template: "/recipes/:id/logs"},
	{Pattern: regexp.MustCompile(`^/recipes/` + publicID + `/save$`), Template: "/recipes/:id/save"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with public IDs (e.g., /recipes/0c5b9f6e-...) to template
// format (e.g., /recipes/:id). Static paths and search endpoints remain unchanged.
//
// Examples:
//
//	NormalizePath("/recipes/0c5b9f6e-2f61-4f3a-9f1c-0a9d7b1e2c3d")  // "/recipes/:id"
//	NormalizePath("/recipes/search")                                // "/recipes/search" (unchanged)
//	NormalizePath("/healthz")                                       // "/healthz" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/recipes/0c5b.../variants?limit=10")  // "/recipes/:id/variants"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path. Static paths like /healthz,
	// /metrics and /recipes/search pass through unchanged.
	return path
}
