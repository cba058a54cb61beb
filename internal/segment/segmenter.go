// Package segment splits full document text into the four canonical paper
// sections (Title, Abstract, Methodology, Conclusions) using heading-pattern
// heuristics with positional fallbacks.
package segment

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/paperlens/paperlens/internal/models"
	"go.uber.org/zap"
)

// maxTitleChars is the longest first line still treated as a title; anything
// longer is likely a running header or extraction garbage.
const maxTitleChars = 200

// boundaryWords are heading phrases that terminate a section even though no
// section of our four kinds starts there.
var boundaryWords = []string{
	"introduction", "background", "related work", "references",
	"acknowledgments", "acknowledgements", "results", "evaluation",
	"experiments", "future work", "appendix",
}

type rule struct {
	kind     models.SectionKind
	heading  *regexp.Regexp // line-anchored heading match
	anywhere *regexp.Regexp // word-boundary match anywhere, for run-on text layers
}

// Segmenter locates sections with a table of heading rules. Construction
// compiles the configured phrase sets once; Segment itself is allocation-light
// and deterministic.
type Segmenter struct {
	rules    []rule
	boundary *regexp.Regexp
	maxChars int
	logger   *zap.Logger
}

// NewSegmenter builds a Segmenter from phrase sets keyed by section kind
// ("Abstract", "Methodology", "Conclusions"). maxChars caps each section's
// length when no terminating heading is found.
func NewSegmenter(patterns map[string][]string, maxChars int, logger *zap.Logger) *Segmenter {
	if logger == nil {
		logger = zap.NewNop()
	}
	kinds := []models.SectionKind{models.SectionAbstract, models.SectionMethodology, models.SectionConclusions}

	var rules []rule
	var boundaryAlts []string
	for _, kind := range kinds {
		phrases := patterns[string(kind)]
		if len(phrases) == 0 {
			continue
		}
		alt := phraseAlternation(phrases)
		boundaryAlts = append(boundaryAlts, alt)
		rules = append(rules, rule{
			kind: kind,
			// Tolerates leading arabic/roman numbering and trailing punctuation,
			// e.g. "2. Methods", "III) CONCLUSIONS", "Abstract:".
			heading:  regexp.MustCompile(`(?mi)^[ \t]*(?:(?:\d+|[ivxlc]+)[.)]?[ \t]+)?(?:` + alt + `)\b[:. \t]*`),
			anywhere: regexp.MustCompile(`(?i)\b(?:` + alt + `)\b[:. \t]*`),
		})
	}
	boundaryAlts = append(boundaryAlts, phraseAlternation(boundaryWords))
	boundary := regexp.MustCompile(`(?mi)^[ \t]*(?:(?:\d+|[ivxlc]+)[.)]?[ \t]+)?(?:` + strings.Join(boundaryAlts, "|") + `)\b`)

	return &Segmenter{rules: rules, boundary: boundary, maxChars: maxChars, logger: logger}
}

func phraseAlternation(phrases []string) string {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(p)))
	}
	return strings.Join(quoted, "|")
}

// Segment returns all four canonical sections. Values may be empty but the
// keys are always present; identical input yields identical output.
func (s *Segmenter) Segment(fullText string) map[models.SectionKind]string {
	out := map[models.SectionKind]string{
		models.SectionTitle:       "",
		models.SectionAbstract:    "",
		models.SectionMethodology: "",
		models.SectionConclusions: "",
	}
	if fullText == "" {
		return out
	}
	text := strings.ReplaceAll(fullText, "\r", "\n")

	out[models.SectionTitle] = firstLineTitle(text)

	for _, r := range s.rules {
		start, ok := s.findStart(r, text)
		if !ok {
			out[r.kind] = s.positionalFallback(r.kind, text)
			s.logger.Debug("section heading not found, using positional fallback",
				zap.String("section", string(r.kind)))
			continue
		}
		end := s.findEnd(text, start)
		out[r.kind] = strings.TrimSpace(text[start:end])
	}
	return out
}

// findStart returns the byte offset just after the first heading match.
// Line-anchored headings are preferred; a word-boundary match anywhere covers
// extractors that lose line structure.
func (s *Segmenter) findStart(r rule, text string) (int, bool) {
	if loc := r.heading.FindStringIndex(text); loc != nil {
		return loc[1], true
	}
	if loc := r.anywhere.FindStringIndex(text); loc != nil {
		return loc[1], true
	}
	return 0, false
}

// findEnd returns the end offset for a section starting at start: the next
// recognized heading, the length cap, or end of document, whichever is first.
func (s *Segmenter) findEnd(text string, start int) int {
	end := len(text)
	if loc := s.boundary.FindStringIndex(text[start:]); loc != nil && loc[0] > 0 {
		end = start + loc[0]
	}
	if limit := start + s.maxChars; limit < end {
		end = snapToRune(text, limit)
	}
	return end
}

// positionalFallback slices the document at an estimated relative offset so
// malformed documents still produce analyzable sections: Abstract from the
// head, Methodology from the early middle, Conclusions from the tail.
func (s *Segmenter) positionalFallback(kind models.SectionKind, text string) string {
	n := len(text)
	switch kind {
	case models.SectionAbstract:
		return strings.TrimSpace(text[:snapToRune(text, min(1500, n))])
	case models.SectionMethodology:
		if n <= 1500 {
			return ""
		}
		return strings.TrimSpace(text[snapToRune(text, 1500):snapToRune(text, min(5000, n))])
	case models.SectionConclusions:
		return strings.TrimSpace(text[snapToRune(text, max(0, n-2000)):])
	}
	return ""
}

// firstLineTitle returns the first non-empty line, or "" when that line is
// too long to plausibly be a title.
func firstLineTitle(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxTitleChars {
			return ""
		}
		return line
	}
	return ""
}

// snapToRune moves idx back to the nearest rune boundary so slicing never
// splits a multi-byte character.
func snapToRune(s string, idx int) int {
	for idx > 0 && idx < len(s) && !utf8.RuneStart(s[idx]) {
		idx--
	}
	return idx
}
