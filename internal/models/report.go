// Package models defines the data structures flowing through the analysis pipeline:
// sections, retrieved candidates, and the similarity report returned to clients.
package models

// SectionKind identifies one of the four canonical paper sections.
type SectionKind string

const (
	SectionTitle       SectionKind = "Title"
	SectionAbstract    SectionKind = "Abstract"
	SectionMethodology SectionKind = "Methodology"
	SectionConclusions SectionKind = "Conclusions"
)

// SectionKinds lists the canonical sections in fixed report order.
var SectionKinds = []SectionKind{SectionTitle, SectionAbstract, SectionMethodology, SectionConclusions}

// Similarity categories. The suffix is part of the wire value.
const (
	CategoryLow      = "Low similarity"
	CategoryModerate = "Moderate similarity"
	CategoryHigh     = "High similarity"
)

// Categorize maps a similarity percentage to its category.
// Boundaries are inclusive on the low side: 25.0 is still Low, 50.0 is still Moderate.
func Categorize(percent float64) string {
	switch {
	case percent <= 25:
		return CategoryLow
	case percent <= 50:
		return CategoryModerate
	default:
		return CategoryHigh
	}
}

// Candidate is a scholarly work returned by a retrieval source.
type Candidate struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Abstract string `json:"abstract"`
	Source   string `json:"source,omitempty"`
}

// MatchResult is a candidate together with its computed similarity.
type MatchResult struct {
	Percent float64 `json:"percent"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
}

// SectionReport holds the per-section analysis outcome.
// Matches are ordered by descending percent; BestSimilarityPercent equals
// the first match's percent, or 0.0 when Matches is empty.
type SectionReport struct {
	Text                  string        `json:"text"`
	BestSimilarityPercent float64       `json:"best_similarity_percent"`
	Category              string        `json:"category"`
	Matches               []MatchResult `json:"matches"`
}

// Metadata holds document-level fields sniffed from the full text.
type Metadata struct {
	Title string `json:"title"`
	Year  string `json:"year"`
	DOI   string `json:"doi"`
}

// OverallReport is the final weighted report. Sections always contains all
// four canonical kinds, even when a section's text is empty.
type OverallReport struct {
	OverallPercent  float64                        `json:"overall_percent"`
	OverallCategory string                         `json:"overall_category"`
	Sections        map[SectionKind]*SectionReport `json:"sections"`
	Metadata        Metadata                       `json:"metadata"`
}
