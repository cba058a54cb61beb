// Package analyzer runs the full similarity pipeline: extract text from a
// PDF, segment it, retrieve candidate works per section, score them, and
// aggregate a weighted overall report.
package analyzer

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/paperlens/paperlens/internal/models"
	"github.com/paperlens/paperlens/internal/similarity"
	"github.com/paperlens/paperlens/pkg/utils"
	"go.uber.org/zap"
)

// ErrNoText indicates that no usable text could be extracted from the PDF.
var ErrNoText = errors.New("no text extracted from PDF")

// sectionWeights apportion each section's contribution to the overall score.
// Abstract and Methodology dominate; Title and Conclusions are light.
var sectionWeights = map[models.SectionKind]float64{
	models.SectionTitle:       0.10,
	models.SectionAbstract:    0.40,
	models.SectionMethodology: 0.40,
	models.SectionConclusions: 0.10,
}

// Extractor turns PDF bytes into plain text.
type Extractor interface {
	Extract(data []byte) string
}

// Segmenter splits full text into the four canonical sections.
type Segmenter interface {
	Segment(fullText string) map[models.SectionKind]string
}

// QueryBuilder reduces section text to a search query.
type QueryBuilder interface {
	Build(sectionText string) string
}

// Retriever fetches candidate works for a query.
type Retriever interface {
	Search(ctx context.Context, query string) []models.Candidate
}

// Analyzer wires the pipeline stages together.
type Analyzer struct {
	extractor       Extractor
	segmenter       Segmenter
	queries         QueryBuilder
	retriever       Retriever
	minSectionChars int
	topMatches      int
	logger          *zap.Logger
}

// New creates an Analyzer. Sections shorter than minSectionChars are skipped;
// each section report keeps at most topMatches matches.
func New(extractor Extractor, segmenter Segmenter, queries QueryBuilder, retriever Retriever, minSectionChars, topMatches int, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topMatches <= 0 {
		topMatches = 5
	}
	return &Analyzer{
		extractor:       extractor,
		segmenter:       segmenter,
		queries:         queries,
		retriever:       retriever,
		minSectionChars: minSectionChars,
		topMatches:      topMatches,
		logger:          logger,
	}
}

// Analyze runs the pipeline over raw PDF bytes. It returns ErrNoText when
// extraction yields nothing usable; retrieval failures never fail the
// analysis, they only reduce the candidate pool.
func (a *Analyzer) Analyze(ctx context.Context, pdfBytes []byte) (*models.OverallReport, error) {
	fullText := a.extractor.Extract(pdfBytes)
	if strings.TrimSpace(fullText) == "" {
		return nil, ErrNoText
	}

	sections := a.segmenter.Segment(fullText)

	report := &models.OverallReport{
		Sections: make(map[models.SectionKind]*models.SectionReport, len(models.SectionKinds)),
		Metadata: ExtractMetadata(fullText),
	}

	// Sections are independent; analyze them concurrently. Each goroutine
	// gets its own report pointer up front so none of them touches the map
	// while the loop is still populating it.
	var wg sync.WaitGroup
	for _, kind := range models.SectionKinds {
		sr := &models.SectionReport{
			Text:     utils.NormalizeWhitespace(sections[kind]),
			Category: models.Categorize(0),
			Matches:  []models.MatchResult{},
		}
		report.Sections[kind] = sr
		wg.Add(1)
		go func(kind models.SectionKind, sr *models.SectionReport) {
			defer wg.Done()
			a.analyzeSection(ctx, kind, sr)
		}(kind, sr)
	}
	wg.Wait()

	report.OverallPercent, report.OverallCategory = aggregate(report.Sections)

	a.logger.Info("analysis complete",
		zap.Float64("overall_percent", report.OverallPercent),
		zap.String("overall_category", report.OverallCategory))
	return report, nil
}

// analyzeSection fills in sr for one section: build a query, retrieve
// candidates, score each against the section text, keep the best matches.
func (a *Analyzer) analyzeSection(ctx context.Context, kind models.SectionKind, sr *models.SectionReport) {
	text := strings.TrimSpace(sr.Text)
	if len(text) < a.minSectionChars {
		a.logger.Debug("section too short, skipping",
			zap.String("section", string(kind)),
			zap.Int("chars", len(text)))
		return
	}

	q := a.queries.Build(text)
	if q == "" {
		return
	}

	candidates := a.retriever.Search(ctx, q)
	a.logger.Debug("section candidates retrieved",
		zap.String("section", string(kind)),
		zap.String("query", q),
		zap.Int("candidates", len(candidates)))

	matches := make([]models.MatchResult, 0, len(candidates))
	for _, c := range candidates {
		score := similarity.Score(text, c.Title+" "+c.Abstract)
		matches = append(matches, models.MatchResult{
			Percent: round2(score),
			Title:   c.Title,
			URL:     c.URL,
		})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Percent > matches[j].Percent })
	if len(matches) > a.topMatches {
		matches = matches[:a.topMatches]
	}

	sr.Matches = matches
	if len(matches) > 0 {
		sr.BestSimilarityPercent = matches[0].Percent
	}
	sr.Category = models.Categorize(sr.BestSimilarityPercent)
}

// aggregate computes the weighted overall percentage and its category from
// the per-section best similarities.
func aggregate(sections map[models.SectionKind]*models.SectionReport) (float64, string) {
	var overall float64
	for kind, weight := range sectionWeights {
		if sr := sections[kind]; sr != nil {
			overall += weight * sr.BestSimilarityPercent
		}
	}
	overall = round2(overall)
	return overall, models.Categorize(overall)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
