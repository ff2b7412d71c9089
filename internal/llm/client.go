// Package llm provides the hosted chat-completion client.
package llm

import (
	"context"

	"github.com/hyperjump/kaiwa/internal/models"
)

// Client sends an ordered message history to a hosted chat model and
// returns the top completion's text.
type Client interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}
