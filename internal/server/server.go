// Package server provides the HTTP API for keyword extraction.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cognicore/rake/internal/logging"
	"github.com/cognicore/rake/pkg/rake"
	"github.com/cognicore/rake/pkg/rake/report"
)

// DefaultMaxBodyBytes limits extraction request bodies.
const DefaultMaxBodyBytes = 4 << 20

// Server is the HTTP server for the extraction API.
type Server struct {
	extractor    atomic.Pointer[rake.Extractor]
	builder      *report.Builder
	addr         string
	maxBodyBytes int64
	logger       *zap.Logger
	server       *http.Server
}

// NewServer creates a server that listens on addr.
func NewServer(e *rake.Extractor, addr string, logger *zap.Logger) *Server {
	s := &Server{
		builder:      report.New(),
		addr:         addr,
		maxBodyBytes: DefaultMaxBodyBytes,
		logger:       logging.OrNop(logger),
	}
	s.extractor.Store(e)
	return s
}

// SetExtractor swaps the extractor used by subsequent requests.
// In-flight requests finish with the extractor they started with.
func (s *Server) SetExtractor(e *rake.Extractor) {
	s.extractor.Store(e)
	s.logger.Info("extractor replaced", zap.Int("stopwords", e.Stopwords().Len()))
}

// Extractor returns the current extractor.
func (s *Server) Extractor() *rake.Extractor {
	return s.extractor.Load()
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/extract", s.handleExtract)
	r.Get("/api/v1/stopwords", s.handleStopwords)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", s.addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
