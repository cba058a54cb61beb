package segment

import (
	"strings"
	"testing"

	"github.com/paperlens/paperlens/internal/models"
)

func defaultPatterns() map[string][]string {
	return map[string][]string{
		"Abstract":    {"abstract"},
		"Methodology": {"methodology", "methods", "materials and methods", "experimental setup"},
		"Conclusions": {"conclusion", "conclusions", "summary", "discussion"},
	}
}

func newTestSegmenter() *Segmenter {
	return NewSegmenter(defaultPatterns(), 4000, nil)
}

const paper = `Deep Learning for Climate Modeling
Jane Doe, John Smith

Abstract
We present a deep learning approach to climate modeling that improves forecast skill.

1. Introduction
Climate modeling has long relied on numerical simulation.

2. Methodology
We train a convolutional network on reanalysis data using stochastic gradient descent.

3. Results
The model outperforms the baseline.

4. Conclusions
Deep learning is a promising tool for climate science.

References
[1] Some paper.`

func TestSegmentWellFormedPaper(t *testing.T) {
	got := newTestSegmenter().Segment(paper)

	if got[models.SectionTitle] != "Deep Learning for Climate Modeling" {
		t.Errorf("title: got %q", got[models.SectionTitle])
	}
	if want := "We present a deep learning approach"; !strings.HasPrefix(got[models.SectionAbstract], want) {
		t.Errorf("abstract: got %q", got[models.SectionAbstract])
	}
	if strings.Contains(got[models.SectionAbstract], "Introduction") {
		t.Errorf("abstract ran past the next heading: %q", got[models.SectionAbstract])
	}
	if want := "We train a convolutional network"; !strings.HasPrefix(got[models.SectionMethodology], want) {
		t.Errorf("methodology: got %q", got[models.SectionMethodology])
	}
	if want := "Deep learning is a promising tool"; !strings.HasPrefix(got[models.SectionConclusions], want) {
		t.Errorf("conclusions: got %q", got[models.SectionConclusions])
	}
	if strings.Contains(got[models.SectionConclusions], "References") {
		t.Errorf("conclusions ran into references: %q", got[models.SectionConclusions])
	}
}

func TestSegmentAlwaysReturnsFourKeys(t *testing.T) {
	inputs := []string{"", "just one line", paper, strings.Repeat("x", 10)}
	for _, in := range inputs {
		got := newTestSegmenter().Segment(in)
		if len(got) != 4 {
			t.Fatalf("input %q: got %d keys", in, len(got))
		}
		for _, kind := range models.SectionKinds {
			if _, ok := got[kind]; !ok {
				t.Errorf("input %q: missing key %s", in, kind)
			}
		}
	}
}

func TestSegmentDeterministic(t *testing.T) {
	s := newTestSegmenter()
	first := s.Segment(paper)
	for i := 0; i < 5; i++ {
		again := s.Segment(paper)
		for kind, text := range first {
			if again[kind] != text {
				t.Fatalf("run %d: section %s differs", i, kind)
			}
		}
	}
}

func TestSegmentTitleTooLongDiscarded(t *testing.T) {
	text := strings.Repeat("running header garbage ", 20) + "\nActual content."
	got := newTestSegmenter().Segment(text)
	if got[models.SectionTitle] != "" {
		t.Errorf("over-long first line kept as title: %q", got[models.SectionTitle])
	}
}

func TestSegmentFirstHeadingWins(t *testing.T) {
	text := `Title line

Discussion
First discussion of the findings here.

Discussion
Second occurrence that must be ignored.`
	got := newTestSegmenter().Segment(text)
	if !strings.HasPrefix(got[models.SectionConclusions], "First discussion") {
		t.Errorf("conclusions: got %q", got[models.SectionConclusions])
	}
}

func TestSegmentPositionalFallbacks(t *testing.T) {
	// No recognizable headings at all: sections come from fixed slices.
	text := strings.Repeat("plain narrative text without any structure whatsoever ", 200)
	got := newTestSegmenter().Segment(text)

	if got[models.SectionAbstract] == "" {
		t.Error("abstract fallback empty")
	}
	if len(got[models.SectionAbstract]) > 1500 {
		t.Errorf("abstract fallback too long: %d", len(got[models.SectionAbstract]))
	}
	if got[models.SectionMethodology] == "" {
		t.Error("methodology fallback empty")
	}
	if got[models.SectionConclusions] == "" {
		t.Error("conclusions fallback empty")
	}
	if len(got[models.SectionConclusions]) > 2000 {
		t.Errorf("conclusions fallback too long: %d", len(got[models.SectionConclusions]))
	}
}

func TestSegmentShortDocumentFallbacks(t *testing.T) {
	text := "A short note with no headings."
	got := newTestSegmenter().Segment(text)
	if got[models.SectionTitle] != text {
		t.Errorf("title: got %q", got[models.SectionTitle])
	}
	// Methodology's positional window starts past the end of this document.
	if got[models.SectionMethodology] != "" {
		t.Errorf("methodology: got %q, want empty", got[models.SectionMethodology])
	}
}

func TestSegmentInlineAbstractHeading(t *testing.T) {
	text := "Deep Learning for Climate Modeling\nAbstract: This paper is entirely copied from a well-known seminal paper text."
	got := newTestSegmenter().Segment(text)
	if got[models.SectionTitle] != "Deep Learning for Climate Modeling" {
		t.Errorf("title: got %q", got[models.SectionTitle])
	}
	if want := "This paper is entirely copied"; !strings.HasPrefix(got[models.SectionAbstract], want) {
		t.Errorf("abstract: got %q", got[models.SectionAbstract])
	}
}

func TestSegmentNumberedAndRomanHeadings(t *testing.T) {
	text := `Paper Title

II. METHODS
Roman numbered methods content here.

5) Conclusion
Numbered conclusion content here.`
	got := newTestSegmenter().Segment(text)
	if !strings.HasPrefix(got[models.SectionMethodology], "Roman numbered methods") {
		t.Errorf("methodology: got %q", got[models.SectionMethodology])
	}
	if !strings.HasPrefix(got[models.SectionConclusions], "Numbered conclusion") {
		t.Errorf("conclusions: got %q", got[models.SectionConclusions])
	}
}

func TestSegmentLengthCap(t *testing.T) {
	s := NewSegmenter(defaultPatterns(), 100, nil)
	text := "Title\n\nAbstract\n" + strings.Repeat("lorem ipsum dolor sit amet ", 100)
	got := s.Segment(text)
	if n := len(got[models.SectionAbstract]); n > 100 {
		t.Errorf("abstract exceeds cap: %d chars", n)
	}
}
