/*
server.go - HTTP router configuration

PURPOSE:
  Configures the chi router for the serve-mode trigger surface. Cron (or a
  cloud scheduler) POSTs /api/run instead of invoking the binary; the
  preview endpoint lets operators inspect a report without posting it.

ROUTER: chi
  Lightweight, context-based, with the standard middleware stack
  (request logging, panic recovery, request IDs) plus CORS for internal
  dashboards that call the preview endpoint.

ROUTES:
  GET  /api/healthz    Liveness probe
  POST /api/run        Execute active cadences (or one forced cadence)
  GET  /api/preview    Dry-run one cadence, return the report as JSON

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/sentinel/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthz", h.Healthz)
		r.Post("/run", h.Run)
		r.Get("/preview", h.Preview)
	})

	return r
}
