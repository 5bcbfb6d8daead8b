// Package ui exposes the analysis session over HTTP: pick tests, run
// the battery, read results, download the rendered report.
package ui

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/semaphore"

	"randeval/app"
	"randeval/internal"
	"randeval/internal/config"
)

// Server wires the battery service behind a chi router.
type Server struct {
	router *chi.Mux
	svc    *app.BatteryService
	cfg    config.AnalysisConfig
	logger *internal.Logger

	// runSem serializes runs: the store has a single writer, so at
	// most one battery executes at a time; concurrent run requests
	// get 409 instead of queueing.
	runSem *semaphore.Weighted

	mu   sync.RWMutex
	last *runResponse
}

// NewServer creates the HTTP surface for one analysis session
func NewServer(svc *app.BatteryService, cfg config.AnalysisConfig, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router: chi.NewRouter(),
		svc:    svc,
		cfg:    cfg,
		logger: logger,
		runSem: semaphore.NewWeighted(1),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleIndex)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/tests", s.handleListTests)
		r.Post("/runs", s.handleRun)
		r.Get("/runs/latest", s.handleLatest)
		r.Get("/report.md", s.handleReportMarkdown)
		r.Get("/report.html", s.handleReportHTML)
		r.Get("/report.xlsx", s.handleReportXLSX)
	})
}

// Handler returns the root http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}
