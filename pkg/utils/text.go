// Package utils provides shared utilities for text and logging.
package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeWhitespace collapses all runs of whitespace (including NBSP and
// tabs) into single spaces and trims the result.
func NormalizeWhitespace(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, " ", " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// ToValidUTF8 replaces invalid UTF-8 sequences with the replacement character.
func ToValidUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}
