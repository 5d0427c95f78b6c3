// Package httpapi provides the HTTP server adapter: generation and editing
// endpoints, stored document and asset serving, health and metrics.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stacklight-labs/sitesmith/internal/core/ports/driven"
	"github.com/stacklight-labs/sitesmith/internal/core/ports/driving"
	"github.com/stacklight-labs/sitesmith/internal/logger"
)

// Errors returned when required ports are not provided.
var (
	ErrMissingGenerator = errors.New("httpapi: site generator is required")
	ErrMissingEditor    = errors.New("httpapi: site editor is required")
)

// Ports aggregates the port interfaces the HTTP server drives.
type Ports struct {
	Generator driving.SiteGenerator
	Editor    driving.SiteEditor

	// Documents and Assets are optional; without them the document and
	// asset routes return 404.
	Documents driven.DocumentStore
	Assets    driven.AssetStore

	// Metrics serves the /metrics route. When nil the default Prometheus
	// gatherer is used.
	Metrics http.Handler
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Generator == nil {
		return ErrMissingGenerator
	}
	if p.Editor == nil {
		return ErrMissingEditor
	}
	return nil
}

// Server is the HTTP API server.
type Server struct {
	ports *Ports
	mux   *http.ServeMux
}

// NewServer creates a new HTTP API server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		ports: ports,
		mux:   http.NewServeMux(),
	}
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("POST /api/generate", s.handleGenerate)
	s.mux.HandleFunc("POST /api/edit", s.handleEdit)
	s.mux.HandleFunc("GET /api/documents", s.handleListDocuments)
	s.mux.HandleFunc("GET /api/documents/{id}", s.handleGetDocument)
	s.mux.HandleFunc("DELETE /api/documents/{id}", s.handleDeleteDocument)
	s.mux.HandleFunc("GET /assets/{id}", s.handleGetAsset)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	metricsHandler := s.ports.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	s.mux.Handle("GET /metrics", metricsHandler)
}

// Handler returns the server's root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("httpapi: shutdown: %v", err)
		}
	}()

	logger.Info("httpapi: listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve http: %w", err)
	}
	return nil
}
