// internal/app/features/auditlog/routes.go
package auditlog

import (
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the audit trail. Only super admins and admins may read it.
// Typically: r.Mount("/api/admin/audit", auditlog.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.FinanceRoles...))
		pr.Get("/", h.ServeList)
	})

	return r
}
