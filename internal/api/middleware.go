/**
 * @description
 * Middleware for the trip-status-service API.
 */
package api

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// JSONRecoverer converts a panic in a handler into the generic 500 error
// payload instead of chi's plain-text response, since every consumer of this
// API expects JSON bodies.
func JSONRecoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered in handler", "panic", rec, "path", r.URL.Path, "stack", string(debug.Stack()))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error":"Internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
