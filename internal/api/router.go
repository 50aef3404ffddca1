/**
 * @description
 * This file sets up the HTTP router for the trip-status-service using the
 * go-chi/chi router. It defines the API routes, applies middleware for
 * logging, panic recovery, and CORS, and maps the routes to their
 * corresponding handler functions.
 */
package api

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new Chi router and registers the trip-status-service
// routes.
func NewRouter(h *Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.Logger)
	r.Use(JSONRecoverer(logger))
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/customer/status", h.handleCustomerStatus)
		r.Post("/customer/status-by-id", h.handleStatusByID)
		r.Post("/rims/phone-lookup", h.handleRimsPhoneLookup)
		r.Post("/rims/customer-status", h.handleRimsCustomerStatus)
		r.Post("/memos/create", h.handleCreateMemo)
	})

	return r
}
