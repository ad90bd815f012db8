package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/markdownql/internal/config"
	"github.com/dgallion1/markdownql/internal/metrics"
	"github.com/dgallion1/markdownql/internal/pipeline"
)

// Server is the HTTP API server for markdownql.
type Server struct {
	router  chi.Router
	runner  *pipeline.Runner
	runs    *pipeline.RunStore
	metrics *metrics.Metrics
	dir     string
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server. Documents are listed
// from dir, which should match the executor's base directory.
func NewServer(runner *pipeline.Runner, runs *pipeline.RunStore, m *metrics.Metrics, dir string, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		runner:  runner,
		runs:    runs,
		metrics: m,
		dir:     dir,
		log:     log,
		cfg:     cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.APIKey, s.log))

		r.Post("/api/query", s.handleQuery)
		r.Get("/api/query/{queryID}", s.handleGetQuery)
		r.Get("/api/documents", s.handleListDocuments)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
