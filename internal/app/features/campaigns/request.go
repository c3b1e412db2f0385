// internal/app/features/campaigns/request.go
package campaigns

import (
	"strings"
	"time"

	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

type campaignRequest struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	TargetAmount    inputval.Number         `json:"targetAmount"`
	GoalAmount      inputval.Number         `json:"goalAmount"`
	Deadline        *string                 `json:"deadline"`
	BannerImage     *string                 `json:"bannerImage"`
	PaymentAccounts []models.PaymentAccount `json:"paymentAccounts"`
	IsActive        *bool                   `json:"isActive"`
}

func (req *campaignRequest) normalize() {
	// goalAmount is an older name for targetAmount.
	if !req.TargetAmount.Present {
		req.TargetAmount = req.GoalAmount
	}
	for _, p := range []*string{req.Title, req.Deadline, req.BannerImage} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if req.Description != nil {
		*req.Description = htmlsanitize.Sanitize(strings.TrimSpace(*req.Description))
	}
	// Drop blank rows so clients can send an untouched editor row.
	if req.PaymentAccounts != nil {
		kept := make([]models.PaymentAccount, 0, len(req.PaymentAccounts))
		for _, a := range req.PaymentAccounts {
			a.Label = strings.TrimSpace(a.Label)
			a.Details = strings.TrimSpace(a.Details)
			if a.Label != "" || a.Details != "" {
				kept = append(kept, a)
			}
		}
		req.PaymentAccounts = kept
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (req *campaignRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating {
		c.Required("title", str(req.Title)).RequiredNumber("targetAmount", req.TargetAmount)
	} else if req.Title != nil {
		c.Required("title", *req.Title)
	}
	return c.
		NonNegative("targetAmount", req.TargetAmount).
		Check(validDate(str(req.Deadline)), "Invalid deadline.").
		Err()
}

func (req *campaignRequest) model() models.DonationCampaign {
	c := models.DonationCampaign{
		Title:           str(req.Title),
		Description:     str(req.Description),
		TargetAmount:    req.TargetAmount.Value,
		Deadline:        str(req.Deadline),
		BannerImage:     str(req.BannerImage),
		PaymentAccounts: req.PaymentAccounts,
		IsActive:        true,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	return c
}

func (req *campaignRequest) update() campaignstore.Update {
	upd := campaignstore.Update{
		Title:           req.Title,
		Description:     req.Description,
		Deadline:        req.Deadline,
		BannerImage:     req.BannerImage,
		PaymentAccounts: req.PaymentAccounts,
		IsActive:        req.IsActive,
	}
	if req.TargetAmount.Valid {
		v := req.TargetAmount.Value
		upd.TargetAmount = &v
	}
	return upd
}
