package ingest

import (
	"context"

	"github.com/hyperjump/kaiwa/internal/apperr"
	"github.com/hyperjump/kaiwa/internal/embedding"
	"github.com/hyperjump/kaiwa/internal/models"
	"github.com/hyperjump/kaiwa/internal/vector"
	"go.uber.org/zap"
)

// Extractor produces per-page documents from a PDF file on disk.
type Extractor interface {
	Extract(path, source string) ([]models.Document, error)
}

// Pipeline is the synchronous upload path: extract pages, chunk, embed,
// and build a fresh vector index. It never touches the currently served
// index; the caller swaps the returned index in after Run succeeds.
type Pipeline struct {
	extractor Extractor
	chunker   *Chunker
	embedder  embedding.Embedder
	logger    *zap.Logger
}

// NewPipeline creates a pipeline with the given stages.
func NewPipeline(extractor Extractor, chunker *Chunker, embedder embedding.Embedder, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		logger:    logger,
	}
}

// Run processes the PDF at path and returns a fully built index.
// source is the uploaded filename recorded on every chunk. Every upload
// recomputes embeddings from scratch.
func (p *Pipeline) Run(ctx context.Context, path, source string) (*vector.Index, error) {
	docs, err := p.extractor.Extract(path, source)
	if err != nil {
		return nil, apperr.Ingest("failed to process PDF: %w", err)
	}
	if len(docs) == 0 {
		return nil, apperr.Ingest("PDF %q contains no extractable text", source)
	}
	p.logger.Debug("extracted pages", zap.String("source", source), zap.Int("pages", len(docs)))

	chunks := p.chunker.ChunkAll(docs)
	if len(chunks) == 0 {
		return nil, apperr.Ingest("PDF %q produced no chunks", source)
	}
	p.logger.Debug("chunked document", zap.String("source", source), zap.Int("chunks", len(chunks)))

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	vectors, err := p.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, apperr.Upstream("embedding failed: %w", err)
	}

	idx, err := vector.NewIndex(p.embedder.Dimensions())
	if err != nil {
		return nil, apperr.Ingest("failed to create index: %w", err)
	}
	if err := idx.Add(ctx, chunks, vectors); err != nil {
		return nil, apperr.Ingest("failed to build index: %w", err)
	}
	p.logger.Info("indexed document",
		zap.String("source", source),
		zap.Int("pages", len(docs)),
		zap.Int("chunks", idx.Size()))
	return idx, nil
}
