// internal/app/features/events/routes.go
package events

import (
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public event routes.
// Typically: r.Mount("/api/events", events.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.With(sm.RequireSignedIn).Get("/my-registrations", h.ServeMyRegistrations)
	r.Get("/{id}", h.ServeEvent)
	r.Post("/{id}/register", h.HandleRegister)

	return r
}

// AdminRoutes mounts event management for the admin set.
// Typically: r.Mount("/api/admin/events", events.AdminRoutes(h, sm))
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.AdminRoles...))

		pr.Get("/", h.ServeAdminList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
		pr.Get("/{id}/registrations", h.ServeRegistrations)
	})

	return r
}
