package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"rsc.io/pdf"
)

// yTolerance is the vertical distance (in PDF points) within which two glyph
// runs are considered part of the same line.
const yTolerance = 2.0

// extractLayout reassembles text from positioned glyph runs. Reads the raw
// content stream instead of the text layer, which catches documents whose
// text objects confuse the plain-text walkers.
func extractLayout(content []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		b.WriteString(assemblePage(page.Content().Text))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// assemblePage orders glyph runs top-to-bottom, left-to-right and joins them
// with spaces within a line and newlines between lines. PDF coordinates have
// the origin at the bottom-left, so higher Y comes first.
func assemblePage(texts []pdf.Text) string {
	if len(texts) == 0 {
		return ""
	}
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if diff := sorted[i].Y - sorted[j].Y; diff > yTolerance || diff < -yTolerance {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var b strings.Builder
	lineY := sorted[0].Y
	lastEnd := 0.0
	for idx, t := range sorted {
		switch {
		case idx == 0:
		case lineY-t.Y > yTolerance:
			b.WriteByte('\n')
			lineY = t.Y
		case t.X-lastEnd > t.FontSize*0.2:
			// Horizontal gap wider than a fraction of the font size means a
			// word boundary the glyph runs do not encode.
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		lastEnd = t.X + t.W
	}
	return b.String()
}
