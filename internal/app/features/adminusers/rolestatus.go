// internal/app/features/adminusers/rolestatus.go
package adminusers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/mailer"
	"github.com/dalemusser/alumnihub/internal/app/system/normalize"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type roleStatusRequest struct {
	Role   string `json:"role"`
	Status string `json:"status"`
}

type featuredRequest struct {
	IsFeatured *bool `json:"isFeatured"`
}

func userID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH /api/admin/users/{id}/role                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRoleStatus changes a user's role and/or status. Approving a pending
// account (pending → active) sends the approval email.
func (h *Handler) HandleRoleStatus(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.CurrentUser(r)
	actorRole, _, _, _ := authz.UserCtx(r)

	uid, ok := userID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "User not found.")
		return
	}

	var req roleStatusRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode role body", err, "Invalid request body.")
		return
	}
	req.Role = normalize.Role(req.Role)
	req.Status = normalize.Status(req.Status)

	if verr := inputval.New().
		Check(req.Role != "" || req.Status != "", "Nothing to update.").
		OneOf("role", req.Role, models.Roles).
		OneOf("status", req.Status, models.Statuses).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	target, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user", err)
		return
	}

	// Only a super admin may touch a super admin or mint a new one.
	if req.Role != "" && !authz.CanGrantRole(actorRole, req.Role) {
		jsonio.Message(w, http.StatusForbidden, "Forbidden.")
		return
	}
	if target.Role == models.RoleSuperAdmin && actorRole != models.RoleSuperAdmin {
		jsonio.Message(w, http.StatusForbidden, "Forbidden.")
		return
	}

	before, err := h.Users.SetRoleStatus(ctx, uid, req.Role, req.Status)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update role/status failed", err)
		return
	}

	after := *before
	if req.Role != "" {
		after.Role = req.Role
	}
	if req.Status != "" {
		after.Status = req.Status
	}

	if actor != nil {
		h.AuditLog.UserRoleChanged(ctx, r, actor.ID, uid, req.Role, req.Status)
	}
	if before.Status == models.StatusPending && after.Status == models.StatusActive {
		h.sendApproval(ctx, &after)
	}

	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message": "User updated successfully.",
		"user":    after,
	})
}

// sendApproval is best-effort: a mail failure never fails the request.
func (h *Handler) sendApproval(ctx context.Context, u *models.User) {
	if h.Mailer == nil {
		return
	}
	email := mailer.BuildApprovalEmail(mailer.ApprovalEmailData{
		SiteName: h.SiteName,
		FullName: u.FullName,
		LoginURL: strings.TrimRight(h.BaseURL, "/") + "/login",
	})
	email.To = u.Email
	if err := h.Mailer.Send(ctx, email); err != nil {
		h.Log.Warn("approval email not sent", zap.String("user_id", u.ID.Hex()), zap.Error(err))
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH /api/admin/users/{id}/featured                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleFeatured(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "User not found.")
		return
	}

	var req featuredRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode featured body", err, "Invalid request body.")
		return
	}
	if req.IsFeatured == nil {
		jsonio.Message(w, http.StatusBadRequest, "Missing required fields: isFeatured.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.SetFeatured(ctx, uid, *req.IsFeatured)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update featured failed", err)
		return
	}

	if actor, ok := auth.CurrentUser(r); ok {
		h.AuditLog.UserFeatured(ctx, r, actor.ID, uid, *req.IsFeatured)
	}

	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message": "User updated successfully.",
		"user":    u,
	})
}
