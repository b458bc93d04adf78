package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"

	"crossmarket/internal/adapters/web/handlers"
	"crossmarket/internal/application/usecases"
)

// Server represents the HTTP server
type Server struct {
	port      int
	dashboard *usecases.DashboardUseCase
	logger    *slog.Logger
	server    *http.Server
}

// NewServer creates a new HTTP server
func NewServer(port int, dashboard *usecases.DashboardUseCase, logger *slog.Logger) *Server {
	return &Server{
		port:      port,
		dashboard: dashboard,
		logger:    logger,
	}
}

// Handler builds the routed, gzip-wrapped handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	overviewHandler := handlers.NewOverviewHandler(s.dashboard, s.logger)
	queryHandler := handlers.NewQueryHandler(s.dashboard, s.logger)
	assetsHandler := handlers.NewAssetsHandler(s.dashboard, s.logger)
	correlationHandler := handlers.NewCorrelationHandler(s.dashboard, s.logger)
	healthHandler := handlers.NewHealthHandler(s.dashboard, s.logger)
	statusHandler := handlers.NewStatusHandler(s.dashboard, s.logger)

	// Register routes
	s.route(mux, "/overview", "Overview", overviewHandler.Handle)
	s.route(mux, "/catalog", "Catalog", queryHandler.HandleCatalog)
	s.route(mux, "/query", "Query", queryHandler.HandleRun)
	s.route(mux, "/history", "History", queryHandler.HandleHistory)
	s.route(mux, "/assets", "Assets", assetsHandler.Handle)
	s.route(mux, "/assets/", "Asset", assetsHandler.Handle)
	s.route(mux, "/compare", "Compare", assetsHandler.HandleCompare)
	s.route(mux, "/correlation", "Correlation", correlationHandler.Handle)
	s.route(mux, "/health", "Health", healthHandler.Handle)
	s.route(mux, "/status", "Status", statusHandler.Handle)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Info("Unmatched request", "method", r.Method, "path", r.URL.Path)
		http.NotFound(w, r)
	})

	return gzhttp.GzipHandler(mux)
}

func (s *Server) route(mux *http.ServeMux, pattern, name string, h http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug(name+" request", "method", r.Method, "path", r.URL.Path)
		h(w, r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("Starting HTTP server", "port", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
