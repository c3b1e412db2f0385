// internal/app/features/donations/public.go
package donations

import (
	"context"
	"net/http"

	donationstore "github.com/dalemusser/alumnihub/internal/app/store/donations"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ServePublicList is the donor wall: received donations only, without
// payment details. ?campaign= narrows it to one campaign.
func (h *Handler) ServePublicList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Donations.List(ctx, donationstore.Filter{
		Status:   models.DonationReceived,
		Campaign: query.Get(r, "campaign"),
		Page:     paging.Parse(r),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donations failed", err)
		return
	}

	out := make([]models.PublicDonation, 0, len(list))
	for i := range list {
		out = append(out, list[i].Public())
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"donations": out})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/donations                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleSubmit records a donation a donor says they sent. It is always
// pending until an admin confirms receipt, so no campaign total moves.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode donation body", err, "Invalid request body.")
		return
	}
	req.Status = nil // donors cannot choose a status
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	d := req.model(models.DonationPending)
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			d.UserID = &oid
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Donations.Create(ctx, d)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create donation failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message":  "Thank you! Your donation has been submitted and is pending verification.",
		"donation": created,
	})
}

// ServeMine lists the signed-in user's own submissions in any status.
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Donations.List(ctx, donationstore.Filter{UserID: &uid, Page: paging.Parse(r)})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list my donations failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"donations": list})
}
