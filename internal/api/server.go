package api

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sparclabs/sparc/internal/analytics"
	"github.com/sparclabs/sparc/internal/config"
	"github.com/sparclabs/sparc/internal/generator"
	"github.com/sparclabs/sparc/internal/metrics"
	"github.com/sparclabs/sparc/internal/repository"
	"github.com/sparclabs/sparc/internal/scheduler"
)

// Server is the HTTP API server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	cfg        *config.Config
	logger     *slog.Logger
	metrics    *metrics.Metrics
	startTime  time.Time

	personas  *repository.PersonaRepository
	campaigns *repository.CampaignRepository
	content   *repository.ContentRepository
	generator *generator.Generator
	scheduler *scheduler.Scheduler
	analytics *analytics.Aggregator
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, db *sql.DB, gen *generator.Generator, sched *scheduler.Scheduler, agg *analytics.Aggregator, m *metrics.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		startTime: time.Now(),
		personas:  repository.NewPersonaRepository(db),
		campaigns: repository.NewCampaignRepository(db),
		content:   repository.NewContentRepository(db),
		generator: gen,
		scheduler: sched,
		analytics: agg,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the HTTP routes
func (s *Server) setupRoutes() {
	// Middleware
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.metrics.HTTPMiddleware)

	// Health check and metrics (no auth required)
	s.router.Get("/health", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	// API v1 routes (auth required)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/personas", s.handlePersonaCreate)
		r.Get("/personas", s.handlePersonaList)
		r.Get("/personas/{id}", s.handlePersonaGet)
		r.Put("/personas/{id}", s.handlePersonaUpdate)
		r.Delete("/personas/{id}", s.handlePersonaDelete)

		r.Post("/campaigns", s.handleCampaignCreate)
		r.Get("/campaigns", s.handleCampaignList)
		r.Get("/campaigns/{id}", s.handleCampaignGet)
		r.Get("/campaigns/{id}/content", s.handleCampaignContent)

		r.Post("/generate", s.handleGenerate)
		r.Post("/generate/twitter", s.handleOptimizeTwitter)
		r.Post("/generate/email", s.handleFormatEmail)

		r.Post("/content", s.handleContentSave)
		r.Get("/content/{id}", s.handleContentGet)
		r.Get("/content/{id}/history", s.handleContentHistory)

		r.Post("/schedules", s.handleScheduleCreate)
		r.Get("/schedules", s.handleScheduleList)
		r.Get("/schedules/{id}", s.handleScheduleGet)
		r.Post("/schedules/{id}/time", s.handleScheduleSetTime)
		r.Post("/schedules/{id}/retry", s.handleScheduleRetry)
		r.Post("/schedules/run", s.handleScheduleRun)

		r.Post("/analytics", s.handleAnalyticsRecord)
		r.Get("/analytics/summary", s.handleAnalyticsSummary)
	})
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.ListenAddr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting HTTP API server", "addr", s.cfg.Server.ListenAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP API server")
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
