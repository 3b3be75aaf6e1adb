package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/NordCoder/uptime-monitor/internal/obs"
)

type Server struct {
	log     *zap.Logger
	uc      *Usecase
	version string
	health  obs.HealthFunc
}

// NewServer takes the already shortened "major.minor" version.
func NewServer(log *zap.Logger, uc *Usecase, version string, health obs.HealthFunc) *Server {
	return &Server{log: log, uc: uc, version: version, health: health}
}

func (s *Server) Router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/healthz", obs.HealthHandler(s.health))
	r.Handle("/metrics", obs.MetricsHandler())
	r.Get("/version", s.handleVersion)

	r.Route("/checks", func(r chi.Router) {
		r.Get("/", s.handleListChecks)
		r.Post("/", s.handleCreateCheck)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetCheck)
			r.Put("/", s.handleUpdateCheck)
			r.Delete("/", s.handleDeleteCheck)
			r.Get("/history", s.handleReadHistory)
			r.Delete("/history", s.handleDeleteHistory)
		})
	})
	return r
}
