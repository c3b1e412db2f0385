// internal/app/features/account/login.go
package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authutil"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/ratelimit"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const badCredentials = "Invalid email or password."

// inactiveMessage is the 403 text for an account that may not sign in.
func inactiveMessage(status string) string {
	if status == models.StatusSuspended {
		return "Your account has been suspended. Please contact an administrator."
	}
	return "Your account is pending approval."
}

// loginRequest carries the credentials. Bearer asks for the token in the
// response body for clients that cannot use the session cookie.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Bearer   bool   `json:"bearer"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/login                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login body", err, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(req.Email)

	if verr := inputval.New().
		Required("email", req.Email).
		Required("password", req.Password).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if h.LoginLimiter != nil && !h.LoginLimiter.Allow(r, req.Email) {
		h.AuditLog.LoginFailedRateLimit(ctx, r, req.Email)
		jsonio.Message(w, http.StatusTooManyRequests, ratelimit.TooManyMessage)
		return
	}

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		h.AuditLog.LoginFailedUserNotFound(ctx, r, req.Email)
		jsonio.Message(w, http.StatusUnauthorized, badCredentials)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user", err)
		return
	}

	if !authutil.CheckPassword(req.Password, u.PasswordHash) {
		h.AuditLog.LoginFailedWrongPassword(ctx, r, u.ID, u.Email)
		jsonio.Message(w, http.StatusUnauthorized, badCredentials)
		return
	}

	// Credentials are right, but only active accounts get a session.
	if !u.IsActive() {
		h.AuditLog.LoginFailedInactive(ctx, r, u.ID, u.Status)
		jsonio.Message(w, http.StatusForbidden, inactiveMessage(u.Status))
		return
	}

	token, err := h.SessionMgr.SignIn(w, r, &auth.SessionUser{
		ID:     u.ID.Hex(),
		Name:   u.FullName,
		Email:  u.Email,
		Role:   u.Role,
		Status: u.Status,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "sign in failed", err)
		return
	}
	if h.LoginLimiter != nil {
		h.LoginLimiter.Succeeded(u.Email)
	}
	h.AuditLog.LoginSuccess(ctx, r, u.ID, u.Email)

	resp := jsonio.M{
		"message": "Login successful.",
		"user":    u.Summary(),
	}
	if req.Bearer {
		resp["token"] = token
	}
	jsonio.Write(w, http.StatusOK, resp)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/logout                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleLogout clears the session cookie. It succeeds with or without a
// session; bearer tokens simply expire.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if res := auth.CurrentResolution(r); res.User != nil {
		h.AuditLog.Logout(r.Context(), r, res.User.ID)
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.ErrLog.Warn(r, "clear session cookie", err)
	}
	jsonio.Message(w, http.StatusOK, "Logged out successfully.")
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/auth/me                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeMe returns the caller's full profile. Inactive accounts get 403
// rather than 401 so clients can tell them apart from signed-out callers.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	res := auth.CurrentResolution(r)
	switch res.State {
	case auth.Authenticated:
	case auth.AccountInactive:
		jsonio.Message(w, http.StatusForbidden, inactiveMessage(res.User.Status))
		return
	default:
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	oid, err := primitive.ObjectIDFromHex(res.User.ID)
	if err != nil {
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, oid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user", err)
		return
	}

	jsonio.Write(w, http.StatusOK, jsonio.M{"user": u})
}
