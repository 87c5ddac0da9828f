package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jbacule/ph-earthquakes/internal/dashboard"
)

// Server exposes the dashboard API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	sessions   *dashboard.Store
	fallback   []byte
	logger     *slog.Logger
}

// NewServer creates an HTTP server. fallbackDoc is served verbatim at
// /data.json.
func NewServer(addr string, sessions *dashboard.Store, fallbackDoc []byte, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:        addr,
			Handler:     mux,
			ReadTimeout: 10 * time.Second,
			// Fetch endpoints wait on the catalog, bounded by USGS_TIMEOUT.
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		sessions: sessions,
		fallback: fallbackDoc,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(sessions))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /data.json", s.handleFallback)
	mux.HandleFunc("GET /api/themes", s.handleThemes)

	mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	mux.HandleFunc("GET /api/sessions/{id}", s.withSession(s.handleGetSession))
	mux.HandleFunc("PUT /api/sessions/{id}/query", s.withSession(s.handleSetQuery))
	mux.HandleFunc("POST /api/sessions/{id}/query/preset/{preset}", s.withSession(s.handlePreset))
	mux.HandleFunc("POST /api/sessions/{id}/fetch", s.withSession(s.handleFetch))
	mux.HandleFunc("PUT /api/sessions/{id}/filters", s.withSession(s.handleSetFilters))
	mux.HandleFunc("DELETE /api/sessions/{id}/filters", s.withSession(s.handleClearFilters))
	mux.HandleFunc("PUT /api/sessions/{id}/theme", s.withSession(s.handleSetTheme))
	mux.HandleFunc("POST /api/sessions/{id}/locate/{eqid}", s.withSession(s.handleLocate))
	mux.HandleFunc("GET /api/sessions/{id}/commands", s.withSession(s.handleCommands))

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
