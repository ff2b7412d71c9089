// Package chat generates answers, either from conversation history alone
// or grounded in chunks retrieved from the current PDF index.
package chat

import (
	"context"
	"strings"

	"github.com/hyperjump/kaiwa/internal/apperr"
	"github.com/hyperjump/kaiwa/internal/embedding"
	"github.com/hyperjump/kaiwa/internal/llm"
	"github.com/hyperjump/kaiwa/internal/models"
	"github.com/hyperjump/kaiwa/internal/vector"
)

// Generator produces chat answers in two modes: General sends the
// conversation history to the LLM as-is; Answer retrieves top-k chunks
// from a vector index first and conditions the LLM on them.
type Generator struct {
	llm      llm.Client
	embedder embedding.Embedder
	topK     int
}

// NewGenerator creates a generator. topK is the fixed number of chunks
// retrieved per question.
func NewGenerator(client llm.Client, embedder embedding.Embedder, topK int) *Generator {
	if topK <= 0 {
		topK = 4
	}
	return &Generator{
		llm:      client,
		embedder: embedder,
		topK:     topK,
	}
}

// General answers from the conversation history alone, with no retrieval.
// The history is sent verbatim; a too-long history simply fails upstream.
func (g *Generator) General(ctx context.Context, history []models.ChatMessage) (string, error) {
	answer, err := g.llm.Complete(ctx, history)
	if err != nil {
		return "", apperr.Upstream("chat completion failed: %w", err)
	}
	return answer, nil
}

// Answer retrieves the chunks most similar to question from idx and asks
// the LLM to answer using them as context. It returns the answer and the
// retrieved chunks so the caller can report sources. A nil index is a
// precondition error; the HTTP layer performs the same check, this one
// guards direct callers.
func (g *Generator) Answer(ctx context.Context, idx *vector.Index, question string) (string, []models.DocumentChunk, error) {
	if idx == nil {
		return "", nil, apperr.Precondition("no PDF loaded, upload a PDF first using /upload-pdf")
	}

	queryVec, err := g.embedder.Embed(ctx, question)
	if err != nil {
		return "", nil, apperr.Upstream("embedding question failed: %w", err)
	}
	results, err := idx.Search(ctx, queryVec, g.topK)
	if err != nil {
		return "", nil, apperr.Upstream("vector search failed: %w", err)
	}

	chunks := make([]models.DocumentChunk, len(results))
	for i, r := range results {
		chunks[i] = r.Chunk
	}

	prompt := buildPrompt(question, chunks)
	answer, err := g.llm.Complete(ctx, []models.ChatMessage{{Role: models.RoleUser, Content: prompt}})
	if err != nil {
		return "", nil, apperr.Upstream("chat completion failed: %w", err)
	}
	return answer, chunks, nil
}

// buildPrompt composes the retrieval-QA prompt: retrieved context first,
// then the question.
func buildPrompt(question string, chunks []models.DocumentChunk) string {
	var sb strings.Builder
	sb.WriteString("Use the following pieces of context to answer the question at the end. ")
	sb.WriteString("If you don't know the answer, just say that you don't know, don't try to make up an answer.\n\n")
	for _, chunk := range chunks {
		sb.WriteString(chunk.Text)
		sb.WriteString("\n\n")
	}
	sb.WriteString("Question: ")
	sb.WriteString(question)
	sb.WriteString("\nHelpful Answer:")
	return sb.String()
}

// Sources returns the deduplicated source identifiers of chunks in
// first-seen order. An empty source renders as "Unknown".
func Sources(chunks []models.DocumentChunk) []string {
	sources := make([]string, 0, len(chunks))
	seen := make(map[string]bool)
	for _, chunk := range chunks {
		source := chunk.Source
		if source == "" {
			source = "Unknown"
		}
		if !seen[source] {
			seen[source] = true
			sources = append(sources, source)
		}
	}
	return sources
}
