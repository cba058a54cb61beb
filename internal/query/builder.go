// Package query reduces section text to a compact keyword query for the
// scholarly search APIs. Submitting raw section text is a documented cause of
// zero-result searches, so only high-signal terms survive.
package query

import (
	"regexp"
	"strings"

	"github.com/paperlens/paperlens/internal/similarity"
)

// word matches alphabetic words of four or more letters; shorter words are
// almost never discriminating search terms.
var word = regexp.MustCompile(`[A-Za-z]{4,}`)

// Builder extracts keyword queries from section text.
type Builder struct {
	maxKeywords int
}

// NewBuilder returns a Builder emitting at most maxKeywords terms per query.
func NewBuilder(maxKeywords int) *Builder {
	if maxKeywords <= 0 {
		maxKeywords = 10
	}
	return &Builder{maxKeywords: maxKeywords}
}

// Build returns a space-joined query of distinct non-stopword keywords in
// first-appearance order. Deterministic; returns "" when the text has no
// usable terms.
func (b *Builder) Build(sectionText string) string {
	matches := word.FindAllString(strings.ToLower(sectionText), -1)

	keywords := make([]string, 0, b.maxKeywords)
	seen := make(map[string]bool, b.maxKeywords)
	for _, w := range matches {
		if similarity.IsStopword(w) || seen[w] {
			continue
		}
		keywords = append(keywords, w)
		seen[w] = true
		if len(keywords) >= b.maxKeywords {
			break
		}
	}
	return strings.Join(keywords, " ")
}
