package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperjump/kaiwa/internal/apperr"
	"github.com/hyperjump/kaiwa/internal/chat"
	"github.com/hyperjump/kaiwa/internal/models"
	"go.uber.org/zap"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "Kaiwa chat API is running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	loaded := s.currentIndex() != nil
	pdfChat := "No PDF loaded"
	if loaded {
		pdfChat = "Available"
	}
	s.respondJSON(w, http.StatusOK, models.StatusResponse{
		GeneralChat: "Available",
		PDFChat:     pdfChat,
		PDFLoaded:   loaded,
	})
}

func (s *Server) handleGeneralChat(w http.ResponseWriter, r *http.Request) {
	var req models.GeneralChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondAppError(w, apperr.ClientInput("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		s.respondAppError(w, apperr.ClientInput("message is required"))
		return
	}
	for _, msg := range req.History {
		if err := msg.Role.Validate(); err != nil {
			s.respondAppError(w, apperr.ClientInput("invalid history: %v", err))
			return
		}
	}

	history := append(append([]models.ChatMessage(nil), req.History...),
		models.ChatMessage{Role: models.RoleUser, Content: req.Message})
	s.logger.Debug("general chat request", zap.Int("history_len", len(history)))

	answer, err := s.generator.General(r.Context(), history)
	if err != nil {
		s.logger.Error("general chat failed", zap.Error(err))
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.ChatResponse{Response: answer})
}

func (s *Server) handleUploadPDF(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondAppError(w, apperr.ClientInput("file field is required: %v", err))
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		s.respondAppError(w, apperr.ClientInput("only PDF files are allowed, got %q", filename))
		return
	}

	tmp, err := os.CreateTemp("", "kaiwa-upload-*.pdf")
	if err != nil {
		s.respondAppError(w, apperr.Ingest("failed to create temporary file: %w", err))
		return
	}
	// Removed on every path, including failed ingests.
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		s.respondAppError(w, apperr.Ingest("failed to store upload: %w", err))
		return
	}
	if err := tmp.Close(); err != nil {
		s.respondAppError(w, apperr.Ingest("failed to store upload: %w", err))
		return
	}

	s.logger.Info("processing PDF upload", zap.String("filename", filename))
	idx, err := s.ingester.Run(r.Context(), tmp.Name(), filename)
	if err != nil {
		// Prior index and flag remain untouched on any failure.
		s.logger.Error("PDF ingest failed", zap.String("filename", filename), zap.Error(err))
		s.respondAppError(w, err)
		return
	}

	s.setIndex(idx)
	s.logger.Info("PDF indexed", zap.String("filename", filename), zap.Int("chunks", idx.Size()))
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("PDF %q uploaded and processed successfully", filename),
	})
}

func (s *Server) handlePDFChat(w http.ResponseWriter, r *http.Request) {
	var req models.PDFChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondAppError(w, apperr.ClientInput("invalid request body: %v", err))
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		s.respondAppError(w, apperr.ClientInput("question is required"))
		return
	}

	idx := s.currentIndex()
	if idx == nil {
		s.respondAppError(w, apperr.Precondition("no PDF loaded, upload a PDF first using /upload-pdf"))
		return
	}

	answer, chunks, err := s.generator.Answer(r.Context(), idx, req.Question)
	if err != nil {
		s.logger.Error("PDF chat failed", zap.Error(err))
		s.respondAppError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, models.ChatResponse{
		Response: answer,
		Sources:  chat.Sources(chunks),
	})
}

func (s *Server) handleClearPDF(w http.ResponseWriter, r *http.Request) {
	s.clearIndex()
	s.logger.Debug("PDF cleared")
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "PDF cleared successfully"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondAppError renders err as {"detail": message} with the status code
// for its kind.
func (s *Server) respondAppError(w http.ResponseWriter, err error) {
	s.respondJSON(w, apperr.Status(err), map[string]string{"detail": err.Error()})
}
