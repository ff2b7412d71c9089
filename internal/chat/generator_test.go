package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/kaiwa/internal/apperr"
	"github.com/hyperjump/kaiwa/internal/embedding"
	"github.com/hyperjump/kaiwa/internal/models"
	"github.com/hyperjump/kaiwa/internal/vector"
)

type fakeLLM struct {
	reply string
	err   error
	calls [][]models.ChatMessage
}

func (f *fakeLLM) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	copied := append([]models.ChatMessage(nil), messages...)
	f.calls = append(f.calls, copied)
	return f.reply, f.err
}

func buildIndex(t *testing.T, embedder embedding.Embedder, chunks []models.DocumentChunk) *vector.Index {
	t.Helper()
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := embedder.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	idx, err := vector.NewIndex(embedder.Dimensions())
	if err != nil {
		t.Fatal(err)
	}
	if err := idx.Add(context.Background(), chunks, vectors); err != nil {
		t.Fatal(err)
	}
	return idx
}

func TestGenerator_General(t *testing.T) {
	f := &fakeLLM{reply: "I'm fine, thanks!"}
	g := NewGenerator(f, embedding.NewMockEmbedder(8), 4)

	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "Hi"},
		{Role: models.RoleUser, Content: "How are you?"},
	}
	answer, err := g.General(context.Background(), history)
	if err != nil {
		t.Fatal(err)
	}
	if answer != "I'm fine, thanks!" {
		t.Errorf("answer: got %q", answer)
	}
	if len(f.calls) != 1 {
		t.Fatalf("LLM calls: got %d", len(f.calls))
	}
	sent := f.calls[0]
	if len(sent) != 2 || sent[0].Content != "Hi" || sent[1].Content != "How are you?" {
		t.Errorf("history sent out of order or incomplete: %+v", sent)
	}
}

func TestGenerator_General_upstreamFailure(t *testing.T) {
	f := &fakeLLM{err: errors.New("rate limited")}
	g := NewGenerator(f, embedding.NewMockEmbedder(8), 4)

	_, err := g.General(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "Hi"}})
	if err == nil {
		t.Fatal("expected error")
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindUpstream {
		t.Errorf("expected upstream kind, got %v", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error should include cause: %v", err)
	}
}

func TestGenerator_Answer(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	chunks := []models.DocumentChunk{
		{ID: "c1", Text: "cats sleep a lot", Source: "cats.pdf", Page: 1},
		{ID: "c2", Text: "cats chase mice", Source: "cats.pdf", Page: 2},
	}
	idx := buildIndex(t, embedder, chunks)

	f := &fakeLLM{reply: "Cats sleep most of the day."}
	g := NewGenerator(f, embedder, 4)

	answer, retrieved, err := g.Answer(context.Background(), idx, "what do cats do?")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "Cats sleep most of the day." {
		t.Errorf("answer: got %q", answer)
	}
	if len(retrieved) != 2 {
		t.Fatalf("retrieved: got %d chunks", len(retrieved))
	}
	if len(f.calls) != 1 || len(f.calls[0]) != 1 {
		t.Fatalf("expected a single one-message LLM call, got %+v", f.calls)
	}
	prompt := f.calls[0][0].Content
	if !strings.Contains(prompt, "what do cats do?") {
		t.Errorf("prompt should contain the question: %q", prompt)
	}
	if !strings.Contains(prompt, "cats sleep a lot") {
		t.Errorf("prompt should contain retrieved context: %q", prompt)
	}
}

func TestGenerator_Answer_nilIndexIsPrecondition(t *testing.T) {
	f := &fakeLLM{reply: "should not be called"}
	g := NewGenerator(f, embedding.NewMockEmbedder(8), 4)

	_, _, err := g.Answer(context.Background(), nil, "anything")
	if err == nil {
		t.Fatal("expected error")
	}
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindPrecondition {
		t.Errorf("expected precondition kind, got %v", err)
	}
	if len(f.calls) != 0 {
		t.Error("no LLM call should be made without an index")
	}
}

func TestGenerator_Answer_topKLimit(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)
	var chunks []models.DocumentChunk
	for _, text := range []string{"one", "two", "three", "four", "five", "six"} {
		chunks = append(chunks, models.DocumentChunk{ID: text, Text: text, Source: "n.pdf", Page: 1})
	}
	idx := buildIndex(t, embedder, chunks)

	g := NewGenerator(&fakeLLM{reply: "ok"}, embedder, 2)
	_, retrieved, err := g.Answer(context.Background(), idx, "numbers")
	if err != nil {
		t.Fatal(err)
	}
	if len(retrieved) != 2 {
		t.Errorf("retrieved: got %d chunks, want 2", len(retrieved))
	}
}

func TestSources_dedupFirstSeenOrder(t *testing.T) {
	chunks := []models.DocumentChunk{
		{Source: "a.pdf"},
		{Source: "a.pdf"},
		{Source: "b.pdf"},
		{Source: "a.pdf"},
	}
	got := Sources(chunks)
	if len(got) != 2 || got[0] != "a.pdf" || got[1] != "b.pdf" {
		t.Errorf("sources: got %v", got)
	}
}

func TestSources_unknownForEmpty(t *testing.T) {
	got := Sources([]models.DocumentChunk{{Source: ""}, {Source: ""}})
	if len(got) != 1 || got[0] != "Unknown" {
		t.Errorf("sources: got %v", got)
	}
}

func TestSources_empty(t *testing.T) {
	got := Sources(nil)
	if len(got) != 0 {
		t.Errorf("sources: got %v", got)
	}
}
