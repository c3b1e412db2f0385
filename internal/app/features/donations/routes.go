// internal/app/features/donations/routes.go
package donations

import (
	"net/http"

	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the public donation routes. submitLimit throttles
// anonymous submissions; nil disables throttling.
// Typically: r.Mount("/api/donations", donations.Routes(h, sm, formLimiter.Middleware))
func Routes(h *Handler, sm *auth.SessionManager, submitLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServePublicList)
	r.With(sm.RequireSignedIn).Get("/me", h.ServeMine)

	r.Group(func(pr chi.Router) {
		if submitLimit != nil {
			pr.Use(submitLimit)
		}
		pr.Post("/", h.HandleSubmit)
	})

	return r
}

// AdminRoutes mounts donation management for super admins and admins.
// Typically: r.Mount("/api/admin/donations", donations.AdminRoutes(h, sm))
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.FinanceRoles...))

		pr.Get("/", h.ServeAdminList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
