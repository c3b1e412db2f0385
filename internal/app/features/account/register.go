// internal/app/features/account/register.go
package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/authutil"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

type registerRequest struct {
	FullName       string             `json:"fullName"`
	Email          string             `json:"email"`
	Password       string             `json:"password"`
	Batch          string             `json:"batch"`
	PassingYear    inputval.Number    `json:"passingYear"`
	CollegeName    string             `json:"collegeName"`
	UniversityName string             `json:"universityName"`
	Profession     string             `json:"profession"`
	Phone          string             `json:"phone"`
	Location       string             `json:"location"`
	Bio            string             `json:"bio"`
	ProfilePicture string             `json:"profilePicture"`
	SocialLinks    models.SocialLinks `json:"socialLinks"`
}

func (req *registerRequest) trim() {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Batch = strings.TrimSpace(req.Batch)
	req.CollegeName = strings.TrimSpace(req.CollegeName)
	req.UniversityName = strings.TrimSpace(req.UniversityName)
	req.Profession = strings.TrimSpace(req.Profession)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Location = strings.TrimSpace(req.Location)
	req.Bio = htmlsanitize.StripTags(strings.TrimSpace(req.Bio))
	req.ProfilePicture = strings.TrimSpace(req.ProfilePicture)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/auth/register                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRegister creates a pending alumni account. An admin must approve it
// before the holder can sign in.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode register body", err, "Invalid request body.")
		return
	}
	req.trim()

	pwErr := authutil.ValidatePassword(req.Password)
	if verr := inputval.New().
		Required("fullName", req.FullName).
		Required("batch", req.Batch).
		RequiredNumber("passingYear", req.PassingYear).
		Required("email", req.Email).
		Required("password", req.Password).
		Required("profilePicture", req.ProfilePicture).
		Required("collegeName", req.CollegeName).
		NonNegative("passingYear", req.PassingYear).
		Email(req.Email).
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

	u, err := h.Users.Create(ctx, models.User{
		FullName:       req.FullName,
		Email:          req.Email,
		PasswordHash:   hash,
		Batch:          req.Batch,
		PassingYear:    req.PassingYear.Int(),
		CollegeName:    req.CollegeName,
		UniversityName: req.UniversityName,
		Profession:     req.Profession,
		Phone:          req.Phone,
		Location:       req.Location,
		Bio:            req.Bio,
		ProfilePicture: req.ProfilePicture,
		SocialLinks:    req.SocialLinks,
		Role:           models.RoleAlumni,
		Status:         models.StatusPending,
	})
	if errors.Is(err, userstore.ErrDuplicateEmail) {
		jsonio.Message(w, http.StatusConflict, "An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create user failed", err)
		return
	}

	h.AuditLog.Registered(ctx, r, u.ID, u.Email)

	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message": "Registration successful. Your account is pending approval.",
		"user":    u.Summary(),
	})
}
