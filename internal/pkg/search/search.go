// Package search holds the keyword-handling rules shared by the
// relevance-search repository and usecase layers.
package search

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinKeywordLength is the minimum rune count of a usable keyword.
	// Shorter input is treated as "no query", not as an error.
	MinKeywordLength = 2

	// MinSimilarity is the trigram similarity floor below which a fuzzy
	// match is ignored.
	MinSimilarity = 0.30

	// DefaultSearchTimeout bounds one search round trip to the database.
	DefaultSearchTimeout = 5 * time.Second
)

// Normalize trims the keyword and collapses runs of inner whitespace to
// a single space, so " beef   stew " and "beef stew" query identically.
func Normalize(keyword string) string {
	return strings.Join(strings.Fields(keyword), " ")
}

// Usable reports whether the normalized keyword is long enough to
// search with.
func Usable(keyword string) bool {
	return utf8.RuneCountInString(Normalize(keyword)) >= MinKeywordLength
}

// EscapeILIKE escapes the ILIKE metacharacters in user input so it
// matches literally under a pattern built as '%' || input || '%'.
func EscapeILIKE(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ILIKEPattern builds the substring pattern for a normalized keyword.
func ILIKEPattern(keyword string) string {
	return "%" + EscapeILIKE(keyword) + "%"
}
