// Package httpapi exposes the checklist service over HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates an HTTP handler with all routes registered. A nil
// metricsHandler leaves /metrics unrouted. Middleware is applied globally in
// the order given.
func NewRouter(h *Handler, metricsHandler http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health/live", h.Liveness)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/modalities", h.Modalities)
		r.Get("/stages", h.Stages)
		r.Get("/checklist", h.Checklist)
		r.Post("/export/{format}", h.Export)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, req, http.StatusNotFound, ErrorResponse{Status: http.StatusNotFound, Title: http.StatusText(http.StatusNotFound)})
	})

	return r
}
