// Package vector provides an in-memory vector index over document chunks.
package vector

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hyperjump/kaiwa/internal/models"
)

// Result is a single similarity search hit.
type Result struct {
	Chunk models.DocumentChunk
	Score float64 // inner product; cosine similarity for normalized vectors
}

// Index is an in-memory vector index using brute-force inner product
// search. An Index is built once per upload and replaced wholesale on the
// next upload; it is never persisted.
type Index struct {
	dimensions int
	chunks     []models.DocumentChunk
	vectors    [][]float32
	mu         sync.RWMutex
}

// NewIndex creates an empty index for vectors of the given dimension.
func NewIndex(dimensions int) (*Index, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("dimensions must be positive")
	}
	return &Index{dimensions: dimensions}, nil
}

// Add appends chunks with their embedding vectors.
func (idx *Index) Add(ctx context.Context, chunks []models.DocumentChunk, vectors [][]float32) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for i, chunk := range chunks {
		if len(vectors[i]) != idx.dimensions {
			return fmt.Errorf("vector dimension mismatch: got %d, expected %d", len(vectors[i]), idx.dimensions)
		}
		vec := make([]float32, idx.dimensions)
		copy(vec, vectors[i])
		idx.chunks = append(idx.chunks, chunk)
		idx.vectors = append(idx.vectors, vec)
	}
	return nil
}

// Search returns the top-k chunks by inner product with query
// (cosine similarity when both sides are normalized), best first.
func (idx *Index) Search(ctx context.Context, query []float32, k int) ([]*Result, error) {
	if len(query) != idx.dimensions {
		return nil, fmt.Errorf("query dimension mismatch: got %d, expected %d", len(query), idx.dimensions)
	}
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	if k <= 0 || len(idx.chunks) == 0 {
		return nil, nil
	}
	scores := make([]*Result, len(idx.chunks))
	for i, vec := range idx.vectors {
		var dot float64
		for j := 0; j < idx.dimensions; j++ {
			dot += float64(query[j] * vec[j])
		}
		scores[i] = &Result{Chunk: idx.chunks[i], Score: dot}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if k > len(scores) {
		k = len(scores)
	}
	return scores[:k], nil
}

// Size returns the number of indexed chunks.
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Dimensions returns the vector dimension the index was built for.
func (idx *Index) Dimensions() int {
	return idx.dimensions
}
