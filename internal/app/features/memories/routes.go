// internal/app/features/memories/routes.go
package memories

import (
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the memory wall. Reading, liking and commenting are open
// to guests; sharing and editing need a signed-in user.
// Typically: r.Mount("/api/memories", memories.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeMemory)
	r.Post("/{id}/like", h.HandleLike)
	r.Get("/{id}/comments", h.ServeComments)
	r.Post("/{id}/comments", h.HandleComment)

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)

		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
