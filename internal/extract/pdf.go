package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hyperjump/kaiwa/internal/models"
	"github.com/ledongthuc/pdf"
)

// PDFPages parses a PDF and returns one Document per non-empty page.
// Pages are numbered from 1.
func PDFPages(content []byte, source string) ([]models.Document, error) {
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	numPages := r.NumPage()
	docs := make([]models.Document, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("extract page %d: %w", i, err)
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, models.Document{
			Text:   text,
			Source: source,
			Page:   i,
		})
	}
	return docs, nil
}
