// Package models defines core data structures for chat, documents, and API payloads.
package models

import "fmt"

// Role is the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Validate returns an error if the role is not a known value.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("invalid role %q", string(r))
	}
}

// ChatMessage is a single turn in a conversation. Messages are immutable;
// an ordered slice of them is the conversation history, supplied by the
// caller on every request (the server keeps no conversation state).
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// GeneralChatRequest is the body of POST /chat/general.
type GeneralChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history,omitempty"`
}

// PDFChatRequest is the body of POST /chat/pdf.
type PDFChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the body of a successful chat reply. Sources is nil for
// general chat and the deduplicated source list for PDF chat.
type ChatResponse struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// StatusResponse reports which chat modes are currently usable.
type StatusResponse struct {
	GeneralChat string `json:"general_chat"`
	PDFChat     string `json:"pdf_chat"`
	PDFLoaded   bool   `json:"pdf_loaded"`
}
