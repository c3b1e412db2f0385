// internal/app/features/health/routes.go
package health

import "github.com/go-chi/chi/v5"

// Routes exposes the liveness probe. No session is required.
// Typically: r.Mount("/health", health.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
