// Package server provides the HTTP API for Kaiwa.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hyperjump/kaiwa/internal/chat"
	"github.com/hyperjump/kaiwa/internal/config"
	"github.com/hyperjump/kaiwa/internal/vector"
	"go.uber.org/zap"
)

// Ingester runs the upload pipeline and returns a fully built index.
type Ingester interface {
	Run(ctx context.Context, path, source string) (*vector.Index, error)
}

// Server is the HTTP server for the Kaiwa API. It owns the process-wide
// document state: the current vector index, or nil when no PDF is loaded.
// All state transitions go through the write lock, so an upload swapping
// the index can never race a concurrent query; "a PDF is loaded" is
// simply "index is non-nil", with no separate flag to drift out of sync.
type Server struct {
	generator *chat.Generator
	ingester  Ingester
	config    *config.ServerConfig
	logger    *zap.Logger
	server    *http.Server

	mu    sync.RWMutex
	index *vector.Index
}

// NewServer creates a server with the given dependencies.
func NewServer(generator *chat.Generator, ingester Ingester, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		generator: generator,
		ingester:  ingester,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router with all API routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))
	// No timeout middleware: LLM and embedding calls are deliberately unbounded.

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Post("/chat/general", s.handleGeneralChat)
	r.Post("/upload-pdf", s.handleUploadPDF)
	r.Post("/chat/pdf", s.handlePDFChat)
	r.Delete("/pdf", s.handleClearPDF)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// currentIndex returns the current index, or nil when no PDF is loaded.
func (s *Server) currentIndex() *vector.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// setIndex atomically replaces the current index. The previous index is
// dropped and garbage-collected.
func (s *Server) setIndex(idx *vector.Index) {
	s.mu.Lock()
	s.index = idx
	s.mu.Unlock()
}

// clearIndex drops the current index. Idempotent.
func (s *Server) clearIndex() {
	s.setIndex(nil)
}
