// internal/app/features/adminusers/routes.go
package adminusers

import (
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the user administration routes.
// Typically: r.Mount("/api/admin/users", adminusers.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.AdminRoles...))

		pr.Get("/", h.ServeList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}/role", h.HandleRoleStatus)
		pr.Patch("/{id}/featured", h.HandleFeatured)
	})

	return r
}
