package entity

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	// MaxTitleLength is the maximum allowed recipe title length in runes.
	MaxTitleLength = 200
	// MaxDescriptionLength is the maximum allowed description length in runes.
	MaxDescriptionLength = 5000
	// MaxNoteLength is the maximum allowed cooking-log note length in runes.
	MaxNoteLength = 2000
	// MaxTagLength is the maximum allowed hashtag length in runes.
	MaxTagLength = 50
	// MaxTagsPerRecipe caps the number of hashtags on one recipe.
	MaxTagsPerRecipe = 10
)

// localePattern accepts BCP 47-style tags of the form "xx" or "xx-YY".
var localePattern = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// ValidateLocale checks that locale is a supported language tag.
func ValidateLocale(locale string) error {
	if locale == "" {
		return &ValidationError{Field: "locale", Message: "is required"}
	}
	if !localePattern.MatchString(locale) {
		return &ValidationError{Field: "locale", Message: "must be a language tag like 'en' or 'pt-BR'"}
	}
	return nil
}

// ValidateTitle checks that title is present and within length limits.
func ValidateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "is too long"}
	}
	return nil
}

// ValidateDescription checks that description is within length limits.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return &ValidationError{Field: "description", Message: "is too long"}
	}
	return nil
}

// tagPattern accepts letters, digits, underscore and hyphen in any
// script, so Japanese hashtags work the same as ASCII ones.
var tagPattern = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)

// NormalizeTag canonicalizes one hashtag: surrounding whitespace and a
// leading '#' are stripped, the rest is lowercased. Returns "" for
// input that is empty after stripping.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(tag)
	tag = strings.TrimPrefix(tag, "#")
	return strings.ToLower(tag)
}

// NormalizeTags canonicalizes a tag list, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		n := NormalizeTag(t)
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// ValidateTags checks a normalized tag list against count, length and
// charset limits.
func ValidateTags(tags []string) error {
	if len(tags) > MaxTagsPerRecipe {
		return &ValidationError{Field: "tags", Message: "too many tags"}
	}
	for _, t := range tags {
		if utf8.RuneCountInString(t) > MaxTagLength {
			return &ValidationError{Field: "tags", Message: "tag is too long"}
		}
		if !tagPattern.MatchString(t) {
			return &ValidationError{Field: "tags", Message: "tag has invalid characters"}
		}
	}
	return nil
}

// ValidateNote checks that a cooking-log note is within length limits.
// Notes are optional; an empty note is a valid "cooked it" mark.
func ValidateNote(note string) error {
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return &ValidationError{Field: "note", Message: "is too long"}
	}
	return nil
}
