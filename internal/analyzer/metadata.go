package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/paperlens/paperlens/internal/models"
)

// maxMetadataTitleChars bounds what the first line may be and still count as
// a title.
const maxMetadataTitleChars = 200

var (
	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	doiPattern  = regexp.MustCompile(`(?i)\b10\.\d{4,9}/[-._;()/:A-Za-z0-9]+`)
)

// ExtractMetadata sniffs document-level fields from the full text: the first
// plausible line as title, the first four-digit year, and the first DOI.
// Missing fields stay empty.
func ExtractMetadata(fullText string) models.Metadata {
	var m models.Metadata

	for _, line := range strings.Split(fullText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) <= maxMetadataTitleChars {
			m.Title = line
		}
		break
	}

	if y := yearPattern.FindString(fullText); y != "" {
		m.Year = y
	}
	if d := doiPattern.FindString(fullText); d != "" {
		// Trailing sentence punctuation is not part of the DOI.
		m.DOI = strings.TrimRight(d, ".;,)")
	}
	return m
}
