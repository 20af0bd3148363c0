package utils

import (
	"regexp"
	"strings"
)

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Useful for fields that are optional and should be NULL in DB if not provided.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// phoneRegex is the allowed character set for phone numbers: digits, plus,
// parentheses, hyphen and space.
var phoneRegex = regexp.MustCompile(`^[0-9+()\- ]+$`)

// IsValidPhone checks a phone string against the allowed character set.
// Callers should normalize with NormalizePhone first.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// NormalizePhone collapses internal whitespace runs to single spaces and trims
// the input. Returns "" for inputs that are empty after trimming.
func NormalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), " ")
}

// NormalizeTags normalizes a raw tag string into the canonical comma-and-space
// separated form: split on commas, trim each segment, drop empty segments and
// rejoin as "a, b, c". Returns "" when nothing remains.
func NormalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	kept := parts[:0]
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, ", ")
}
