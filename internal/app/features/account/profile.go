// internal/app/features/account/profile.go
package account

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// profileRequest carries a partial profile. Absent fields keep their value;
// email is not accepted here.
type profileRequest struct {
	FullName       *string             `json:"fullName"`
	Batch          *string             `json:"batch"`
	PassingYear    inputval.Number     `json:"passingYear"`
	CollegeName    *string             `json:"collegeName"`
	UniversityName *string             `json:"universityName"`
	Profession     *string             `json:"profession"`
	Phone          *string             `json:"phone"`
	Location       *string             `json:"location"`
	Bio            *string             `json:"bio"`
	ProfilePicture *string             `json:"profilePicture"`
	SocialLinks    *models.SocialLinks `json:"socialLinks"`
}

func overlay(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// apply merges req onto the stored user's profile.
func (req *profileRequest) apply(u *models.User) userstore.ProfileUpdate {
	upd := userstore.ProfileUpdate{
		FullName:       u.FullName,
		Batch:          u.Batch,
		PassingYear:    u.PassingYear,
		CollegeName:    u.CollegeName,
		UniversityName: u.UniversityName,
		Profession:     u.Profession,
		Phone:          u.Phone,
		Location:       u.Location,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		SocialLinks:    u.SocialLinks,
	}
	overlay(&upd.FullName, req.FullName)
	overlay(&upd.Batch, req.Batch)
	overlay(&upd.CollegeName, req.CollegeName)
	overlay(&upd.UniversityName, req.UniversityName)
	overlay(&upd.Profession, req.Profession)
	overlay(&upd.Phone, req.Phone)
	overlay(&upd.Location, req.Location)
	overlay(&upd.ProfilePicture, req.ProfilePicture)
	if req.Bio != nil {
		upd.Bio = htmlsanitize.StripTags(strings.TrimSpace(*req.Bio))
	}
	if req.PassingYear.Valid {
		upd.PassingYear = req.PassingYear.Int()
	}
	if req.SocialLinks != nil {
		upd.SocialLinks = *req.SocialLinks
	}
	return upd
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH /api/auth/profile                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req profileRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode profile body", err, "Invalid request body.")
		return
	}

	chk := inputval.New().NonNegative("passingYear", req.PassingYear)
	if req.FullName != nil {
		chk.Required("fullName", *req.FullName)
	}
	if verr := chk.Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	cur, err := h.Users.GetByID(ctx, uid)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "User not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading user", err)
		return
	}

	u, err := h.Users.UpdateProfile(ctx, uid, req.apply(cur))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update profile failed", err)
		return
	}

	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message": "Profile updated successfully.",
		"user":    u,
	})
}
