package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanityforge/create2-miner/internal/config"
	"github.com/vanityforge/create2-miner/internal/logger"
	"github.com/vanityforge/create2-miner/pkg/miner"
)

// Server is the HTTP transport around the address-derivation and salt-search
// core. It maps validation failures to client errors and imposes a
// request-level mining deadline distinct from the attempt cap.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	miner      *miner.Miner
	cfg        *config.Config
	logger     *logger.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(cfg *config.Config, m *miner.Miner, log *logger.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		router: router,
		httpServer: &http.Server{
			Addr:        fmt.Sprintf(":%d", cfg.Port),
			Handler:     router,
			ReadTimeout: 15 * time.Second,
			IdleTimeout: 60 * time.Second,
			// No WriteTimeout: mining responses may legitimately take up
			// to the configured mine timeout.
		},
		miner:  m,
		cfg:    cfg,
		logger: log,
	}

	router.Use(middleware.Recoverer)

	router.Get("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/compute", s.handleCompute)
		r.Post("/mine", s.handleMine)
		r.Get("/difficulty", s.handleDifficulty)
	})

	return s
}

// Router exposes the route tree for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Printf("API server listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server, waiting for in-flight
// requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Printf("API server shutting down...")
	return s.httpServer.Shutdown(ctx)
}
