// Package extract turns raw PDF bytes into plain text using an ordered chain
// of extraction strategies, falling back to OCR for scanned documents.
package extract

import (
	"strings"

	"github.com/paperlens/paperlens/pkg/utils"
	"go.uber.org/zap"
)

// Strategy is a single text extraction backend.
type Strategy struct {
	Name string
	Fn   func(data []byte) (string, error)
}

// Extractor runs strategies in priority order until one yields sufficient text.
type Extractor struct {
	strategies []Strategy
	ocr        Strategy
	minLength  int
	logger     *zap.Logger
}

// NewExtractor returns an Extractor with the default strategy chain:
// MuPDF text layer, then the ledongthuc plain-text walker, then positioned
// glyph layout assembly, then OCR. minLength is the sufficiency threshold:
// output shorter than this (after trimming) escalates to the next strategy.
func NewExtractor(minLength int, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		strategies: []Strategy{
			{Name: "mupdf", Fn: extractMuPDF},
			{Name: "pdftext", Fn: extractPDFText},
			{Name: "layout", Fn: extractLayout},
		},
		ocr:       Strategy{Name: "ocr", Fn: extractOCR},
		minLength: minLength,
		logger:    logger,
	}
}

// NewExtractorWithStrategies returns an Extractor using the given chain and
// OCR strategy. Used by tests to exercise the escalation policy.
func NewExtractorWithStrategies(strategies []Strategy, ocr Strategy, minLength int, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{strategies: strategies, ocr: ocr, minLength: minLength, logger: logger}
}

// Extract returns the best-effort plain text of the PDF. It never returns an
// error: extraction failure for every strategy including OCR yields the
// longest partial text accumulated, possibly the empty string. The caller is
// responsible for treating empty output as its own error condition. Output is
// always valid UTF-8; broken font encodings produce replacement characters
// instead of corrupting the JSON report downstream.
func (e *Extractor) Extract(data []byte) string {
	var best string

	for _, s := range e.strategies {
		text := e.run(s, data)
		if e.sufficient(text) {
			e.logger.Debug("extraction succeeded",
				zap.String("strategy", s.Name),
				zap.Int("chars", len(text)))
			return utils.ToValidUTF8(text)
		}
		if len(strings.TrimSpace(text)) > len(strings.TrimSpace(best)) {
			best = text
		}
		e.logger.Debug("extraction insufficient, escalating",
			zap.String("strategy", s.Name),
			zap.Int("chars", len(strings.TrimSpace(text))))
	}

	// No text layer worth keeping; the document is likely scanned images.
	text := e.run(e.ocr, data)
	if len(strings.TrimSpace(text)) > len(strings.TrimSpace(best)) {
		best = text
	}
	return utils.ToValidUTF8(best)
}

// run invokes a strategy, converting panics and errors into empty output.
// Some PDF parsers panic on malformed cross-reference tables; the chain must
// degrade instead of crashing the request.
func (e *Extractor) run(s Strategy, data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("extraction strategy panicked",
				zap.String("strategy", s.Name),
				zap.Any("panic", r))
			text = ""
		}
	}()
	text, err := s.Fn(data)
	if err != nil {
		e.logger.Debug("extraction strategy failed",
			zap.String("strategy", s.Name),
			zap.Error(err))
		return ""
	}
	return text
}

func (e *Extractor) sufficient(text string) bool {
	return len(strings.TrimSpace(text)) >= e.minLength
}
