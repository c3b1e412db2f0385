// internal/app/features/campaigns/campaigns.go
package campaigns

import (
	"context"
	"errors"
	"net/http"

	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/app/system/txn"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

const duplicateTitle = "A campaign with this title already exists."

// ServeActive lists campaigns open for donations.
func (h *Handler) ServeActive(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, true)
}

// ServeAll lists every campaign, inactive ones included.
func (h *Handler) ServeAll(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, false)
}

func (h *Handler) serveList(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Campaigns.List(ctx, activeOnly)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list campaigns failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"campaigns": list})
}

// HandleCreate adds a campaign. Donations already naming the title count
// toward it immediately.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req campaignRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode campaign body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var created models.DonationCampaign
	err := txn.Run(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		c, err := h.Campaigns.Create(ctx, req.model())
		if err != nil {
			return err
		}
		if err := h.Campaigns.RecalcCollected(ctx, c.Title); err != nil {
			return err
		}
		got, err := h.Campaigns.GetByID(ctx, c.ID)
		if err != nil {
			return err
		}
		created = *got
		return nil
	})
	if errors.Is(err, campaignstore.ErrDuplicateTitle) {
		jsonio.Message(w, http.StatusConflict, duplicateTitle)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create campaign failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message":  "Campaign created successfully.",
		"campaign": created,
	})
}

// HandleUpdate edits a campaign. A rename re-reads the total for the new
// title; donations are matched by title, not ID.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Campaign not found.")
		return
	}

	var req campaignRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode campaign body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var after *models.DonationCampaign
	err := txn.Run(ctx, h.DB.Client(), h.Log, func(ctx context.Context) error {
		c, err := h.Campaigns.Update(ctx, id, req.update())
		if err != nil {
			return err
		}
		if req.Title != nil {
			if err := h.Campaigns.RecalcCollected(ctx, c.Title); err != nil {
				return err
			}
			if c, err = h.Campaigns.GetByID(ctx, id); err != nil {
				return err
			}
		}
		after = c
		return nil
	})
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		jsonio.Message(w, http.StatusNotFound, "Campaign not found.")
		return
	case errors.Is(err, campaignstore.ErrDuplicateTitle):
		jsonio.Message(w, http.StatusConflict, duplicateTitle)
		return
	case err != nil:
		h.ErrLog.LogServerError(w, r, "update campaign failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message":  "Campaign updated successfully.",
		"campaign": after,
	})
}

// HandleDelete removes a campaign. Its donations stay and are simply no
// longer aggregated.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := campaignID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Campaign not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Campaigns.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Campaign not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete campaign failed", err)
		return
	}

	if actor, ok := auth.CurrentUser(r); ok {
		h.AuditLog.CampaignDeleted(ctx, r, actor.ID, c.ID, c.Title)
	}
	jsonio.Message(w, http.StatusOK, "Campaign deleted successfully.")
}

// HandleRecalculate recomputes every campaign total from its donations.
func (h *Handler) HandleRecalculate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	n, err := h.Campaigns.RecalcAll(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "recalculate campaigns failed", err)
		return
	}

	if actor, ok := auth.CurrentUser(r); ok {
		h.AuditLog.CampaignsRecounted(ctx, r, actor.ID, n)
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message":   "Campaign totals recalculated.",
		"campaigns": n,
	})
}
