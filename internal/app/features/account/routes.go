// internal/app/features/account/routes.go
package account

import (
	"net/http"

	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the account routes. formLimit throttles the unauthenticated
// form endpoints (register, forgot-password); nil disables throttling.
// Typically: r.Mount("/api/auth", account.Routes(h, sm, formLimiter.Middleware))
func Routes(h *Handler, sm *auth.SessionManager, formLimit func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		if formLimit != nil {
			pr.Use(formLimit)
		}
		pr.Post("/register", h.HandleRegister)
		pr.Post("/forgot-password", h.HandleForgotPassword)
	})

	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Post("/reset-password", h.HandleResetPassword)
	r.Get("/me", h.ServeMe)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Patch("/profile", h.HandleProfile)
	})

	return r
}
