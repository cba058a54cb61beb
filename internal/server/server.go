// Package server provides the HTTP API for Paperlens.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/paperlens/paperlens/internal/config"
	"github.com/paperlens/paperlens/internal/models"
	"go.uber.org/zap"
)

// maxUploadBytes caps accepted PDF uploads at 32 MiB.
const maxUploadBytes = 32 << 20

// Analyzer runs the similarity pipeline over uploaded PDF bytes.
type Analyzer interface {
	Analyze(ctx context.Context, pdfBytes []byte) (*models.OverallReport, error)
}

// Server is the HTTP server for the Paperlens API.
type Server struct {
	analyzer Analyzer
	config   *config.ServerConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(analyzer Analyzer, cfg *config.ServerConfig, logger *zap.Logger) *Server {
	return &Server{
		analyzer: analyzer,
		config:   cfg,
		logger:   logger,
	}
}

// Router builds the chi router with middleware and routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Duration(s.config.RequestTimeoutSeconds) * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/analyze", s.handleAnalyze)
	r.Get("/health", s.handleHealth)
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

// requestID tags every response with an X-Request-ID for log correlation.
// An incoming ID is preserved so callers can trace through proxies.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}
