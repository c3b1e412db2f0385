// internal/app/features/account/password.go
package account

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/authutil"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/mailer"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const forgotMessage = "If an account exists for that email, a password reset link has been sent."

type forgotRequest struct {
	Email string `json:"email"`
}

type resetRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/forgot-password                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleForgotPassword always answers with the same message so the endpoint
// cannot be used to discover which emails have accounts.
func (h *Handler) HandleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode forgot-password body", err, "Invalid request body.")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if verr := inputval.New().Required("email", req.Email).Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusOK, forgotMessage)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user", err)
		return
	}

	token, digest, err := authutil.NewResetToken()
	if err != nil {
		h.ErrLog.LogServerError(w, r, "generate reset token failed", err)
		return
	}
	if err := h.Users.SetResetToken(ctx, u.ID, digest, time.Now().Add(authutil.ResetTokenTTL)); err != nil {
		h.ErrLog.LogServerError(w, r, "store reset token failed", err)
		return
	}
	h.AuditLog.PasswordResetRequested(ctx, r, u.ID)

	if h.Mailer != nil {
		email := mailer.BuildResetEmail(mailer.ResetEmailData{
			SiteName:  h.SiteName,
			FullName:  u.FullName,
			ResetURL:  h.resetURL(token),
			ExpiresIn: "1 hour",
		})
		email.To = u.Email
		if err := h.Mailer.Send(ctx, email); err != nil {
			h.Log.Warn("password reset email not sent", zap.String("user_id", u.ID.Hex()), zap.Error(err))
		}
	}

	jsonio.Message(w, http.StatusOK, forgotMessage)
}

func (h *Handler) resetURL(token string) string {
	return strings.TrimRight(h.BaseURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/reset-password                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode reset-password body", err, "Invalid request body.")
		return
	}
	req.Token = strings.TrimSpace(req.Token)

	pwErr := authutil.ValidatePassword(req.Password)
	if verr := inputval.New().
		Required("token", req.Token).
		Required("password", req.Password).
		Check(pwErr == nil, authutil.PasswordMessage(pwErr)).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.ResetPassword(ctx, authutil.HashResetToken(req.Token), hash)
	if errors.Is(err, userstore.ErrInvalidResetToken) {
		jsonio.Message(w, http.StatusBadRequest, "Invalid or expired reset token.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reset password failed", err)
		return
	}
	h.AuditLog.PasswordReset(ctx, r, u.ID)

	jsonio.Message(w, http.StatusOK, "Password has been reset. You can now log in.")
}
