// Package extract provides text extraction from uploaded PDF files.
package extract

import (
	"fmt"
	"os"

	"github.com/hyperjump/kaiwa/internal/models"
)

// Extractor extracts per-page text from PDF files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the PDF at path and returns one Document per page that
// contains text. source is recorded on every document and becomes the
// identifier reported back to API callers; it is the uploaded filename,
// not the temporary path. Returns an error if the file cannot be read or
// is not a parseable PDF.
func (e *Extractor) Extract(path, source string) ([]models.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return PDFPages(content, source)
}
