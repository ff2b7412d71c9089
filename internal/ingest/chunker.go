// Package ingest turns an uploaded PDF into an embedded vector index.
package ingest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/hyperjump/kaiwa/internal/models"
)

// Chunker splits page text into overlapping character-based chunks.
// Boundaries are a pure function of rune counting; there is no sentence
// or paragraph awareness.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a chunker with the given target size and overlap (in runes).
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Chunk splits a document into DocumentChunks with overlapping windows.
// Source and Page carry over from the document; Index counts chunks
// within the document.
func (c *Chunker) Chunk(doc models.Document) []models.DocumentChunk {
	runes := []rune(doc.Text)
	if len(runes) == 0 {
		return nil
	}
	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = 1
	}
	var chunks []models.DocumentChunk
	chunkIndex := 0
	for i := 0; i < len(runes); i += step {
		end := i + c.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, models.DocumentChunk{
			ID:     fmt.Sprintf("%s_p%d_%s", doc.Source, doc.Page, uuid.New().String()[:8]),
			Text:   string(runes[i:end]),
			Source: doc.Source,
			Page:   doc.Page,
			Index:  chunkIndex,
		})
		chunkIndex++
		if end >= len(runes) {
			break
		}
	}
	return chunks
}

// ChunkAll chunks every document in order.
func (c *Chunker) ChunkAll(docs []models.Document) []models.DocumentChunk {
	var all []models.DocumentChunk
	for _, doc := range docs {
		all = append(all, c.Chunk(doc)...)
	}
	return all
}
