// internal/app/features/donations/admin.go
package donations

import (
	"context"
	"errors"
	"net/http"

	donationstore "github.com/dalemusser/alumnihub/internal/app/store/donations"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeAdminList returns every donation with full details.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if verr := inputval.New().OneOf("status", status, models.DonationStatuses).Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Donations.List(ctx, donationstore.Filter{
		Status:   status,
		Campaign: query.Get(r, "campaign"),
		Page:     paging.Parse(r),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list donations failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"donations": list})
}

// HandleCreate records a donation entered by staff. Status defaults to
// received.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode donation body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}
	status := str(req.Status)
	if status == "" {
		status = models.DonationReceived
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var created models.Donation
	err := h.inTxn(ctx, func(ctx context.Context) error {
		var err error
		created, err = h.Donations.Create(ctx, req.model(status))
		if err != nil {
			return err
		}
		if created.Status == models.DonationReceived {
			return h.recalc(ctx, created.Campaign)
		}
		return nil
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create donation failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message":  "Donation created successfully.",
		"donation": created,
	})
}

// HandleUpdate edits a donation and recomputes the campaign it now names
// and, when the campaign changed, the one it used to name.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Donation not found.")
		return
	}

	var req donationRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode donation body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var after *models.Donation
	err := h.inTxn(ctx, func(ctx context.Context) error {
		before, next, err := h.Donations.Update(ctx, id, req.update())
		if err != nil {
			return err
		}
		after = next
		return h.recalc(ctx, next.Campaign, before.Campaign)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Donation not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update donation failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message":  "Donation updated successfully.",
		"donation": after,
	})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := donationID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Donation not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var removed *models.Donation
	err := h.inTxn(ctx, func(ctx context.Context) error {
		d, err := h.Donations.Delete(ctx, id)
		if err != nil {
			return err
		}
		removed = d
		if d.Status == models.DonationReceived {
			return h.recalc(ctx, d.Campaign)
		}
		return nil
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Donation not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete donation failed", err)
		return
	}

	if actor, ok := auth.CurrentUser(r); ok {
		h.AuditLog.DonationDeleted(ctx, r, actor.ID, removed.ID, removed.Campaign)
	}
	jsonio.Message(w, http.StatusOK, "Donation deleted successfully.")
}
