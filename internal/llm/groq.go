package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/hyperjump/kaiwa/internal/config"
	"github.com/hyperjump/kaiwa/internal/models"
)

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint.
// The API key is read from the environment on every call, so a missing
// credential surfaces as a call-time failure rather than at startup.
// There are no retries and no client-side timeout; callers hang as long
// as the provider does.
type GroqClient struct {
	baseURL   string
	model     string
	apiKeyEnv string
	client    *http.Client
}

// NewGroqClient creates a client from the LLM config section.
func NewGroqClient(cfg config.LLMConfig) *GroqClient {
	return &GroqClient{
		baseURL:   cfg.BaseURL,
		model:     cfg.Model,
		apiKeyEnv: cfg.APIKeyEnv,
		client:    &http.Client{},
	}
}

type chatCompletionRequest struct {
	Model    string               `json:"model"`
	Messages []models.ChatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the message history verbatim and returns the first
// completion's text.
func (c *GroqClient) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	apiKey := os.Getenv(c.apiKeyEnv)
	if apiKey == "" {
		return "", fmt.Errorf("authentication failed: environment variable %s is not set", c.apiKeyEnv)
	}

	body, err := json.Marshal(chatCompletionRequest{Model: c.model, Messages: messages})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("call chat API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat API returned %s: %s", resp.Status, bytes.TrimSpace(detail))
	}

	var parsed chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
