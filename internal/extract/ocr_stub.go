//go:build !ocr || !cgo
// +build !ocr !cgo

package extract

import "errors"

// extractOCR is a stub when built without the ocr tag (see ocr.go for the
// real implementation). Build with -tags=ocr and install Tesseract to enable
// recognition of scanned documents.
func extractOCR(_ []byte) (string, error) {
	return "", errors.New("OCR not available: build with -tags=ocr and install Tesseract")
}
