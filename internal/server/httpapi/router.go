package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrijs2005/memorymap/internal/logging"
)

// NewRouter wires the share routes, health check and metrics endpoint.
func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(logger))
	r.Use(Metrics())

	r.Get("/shared-memories/{ids}", h.Shared)
	r.Get("/health/live", h.Live)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
