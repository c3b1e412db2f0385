// internal/app/features/adminusers/create.go
package adminusers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authutil"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/normalize"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

type createRequest struct {
	FullName    string          `json:"fullName"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Role        string          `json:"role"`
	Status      string          `json:"status"`
	Batch       string          `json:"batch"`
	PassingYear inputval.Number `json:"passingYear"`
	CollegeName string          `json:"collegeName"`
	Profession  string          `json:"profession"`
	Phone       string          `json:"phone"`
}

// HandleCreate adds an account on someone's behalf. Unless told otherwise
// the account is an active alumni; it skips the approval queue.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	actorRole, _, _, _ := authz.UserCtx(r)

	var req createRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode create user body", err, "Invalid request body.")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Role = normalize.Role(req.Role)
	req.Status = normalize.Status(req.Status)
	if req.Role == "" {
		req.Role = models.RoleAlumni
	}
	if req.Status == "" {
		req.Status = models.StatusActive
	}

	pwErr := authutil.ValidatePassword(req.Password)
	if verr := inputval.New().
		Required("fullName", req.FullName).
		Required("email", req.Email).
		Required("password", req.Password).
		Email(req.Email).
		OneOf("role", req.Role, models.Roles).
		OneOf("status", req.Status, models.Statuses).
		NonNegative("passingYear", req.PassingYear).
		Check(pwErr == nil, authutil.PasswordMessage(pwErr)).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}
	if !authz.CanGrantRole(actorRole, req.Role) {
		jsonio.Message(w, http.StatusForbidden, "Forbidden.")
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       req.Status,
		Batch:        strings.TrimSpace(req.Batch),
		PassingYear:  req.PassingYear.Int(),
		CollegeName:  strings.TrimSpace(req.CollegeName),
		Profession:   strings.TrimSpace(req.Profession),
		Phone:        strings.TrimSpace(req.Phone),
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		jsonio.Message(w, http.StatusConflict, "An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err)
		return
	}

	if actor, ok := auth.CurrentUser(r); ok {
		h.AuditLog.UserCreated(ctx, r, actor.ID, u.ID, u.Role)
	}

	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message": "User created successfully.",
		"user":    u,
	})
}
