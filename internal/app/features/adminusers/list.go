// internal/app/features/adminusers/list.go
package adminusers

import (
	"context"
	"net/http"

	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/normalize"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
)

// ServeList returns every account, newest first, optionally narrowed by
// ?status= and ?role=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := normalize.Status(query.Get(r, "status"))
	role := normalize.Role(query.Get(r, "role"))
	if verr := inputval.New().
		OneOf("status", status, models.Statuses).
		OneOf("role", role, models.Roles).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListAdmin(ctx, status, role, paging.Parse(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list users failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"users": users})
}
