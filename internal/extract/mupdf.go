package extract

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// extractMuPDF extracts the text layer via MuPDF. Primary strategy: fastest
// and most tolerant of real-world PDFs.
func extractMuPDF(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			continue
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
