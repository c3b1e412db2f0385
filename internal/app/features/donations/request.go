// internal/app/features/donations/request.go
package donations

import (
	"strings"
	"time"

	donationstore "github.com/dalemusser/alumnihub/internal/app/store/donations"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

// donationRequest is shared by submit, create and update. Absent fields
// are left alone on update.
type donationRequest struct {
	DonorName     *string         `json:"donorName"`
	Campaign      *string         `json:"campaign"`
	Amount        inputval.Number `json:"amount"`
	Method        *string         `json:"method"`
	DonationDate  *string         `json:"donationDate"`
	Note          *string         `json:"note"`
	SentToLabel   *string         `json:"sentToLabel"`
	SentToDetails *string         `json:"sentToDetails"`
	FromAccount   *string         `json:"fromAccount"`
	Status        *string         `json:"status"`
}

func (req *donationRequest) normalize() {
	for _, p := range []*string{req.DonorName, req.Campaign, req.Method, req.DonationDate, req.SentToLabel, req.SentToDetails, req.FromAccount, req.Status} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if req.Status != nil {
		*req.Status = strings.ToLower(*req.Status)
	}
	if req.Note != nil {
		*req.Note = htmlsanitize.StripTags(strings.TrimSpace(*req.Note))
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

func (req *donationRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating {
		c.Required("donorName", str(req.DonorName)).
			Required("campaign", str(req.Campaign)).
			RequiredNumber("amount", req.Amount).
			Required("method", str(req.Method))
	} else {
		if req.DonorName != nil {
			c.Required("donorName", *req.DonorName)
		}
		if req.Campaign != nil {
			c.Required("campaign", *req.Campaign)
		}
		if req.DonationDate != nil {
			c.Required("donationDate", *req.DonationDate)
		}
		c.Enum("method", req.Method, models.DonationMethods).
			Enum("status", req.Status, models.DonationStatuses)
	}
	return c.
		NonNegative("amount", req.Amount).
		OneOf("method", str(req.Method), models.DonationMethods).
		OneOf("status", str(req.Status), models.DonationStatuses).
		Check(validDate(str(req.DonationDate)), "Invalid donationDate.").
		Err()
}

// model builds a new donation with the given status.
func (req *donationRequest) model(status string) models.Donation {
	date := str(req.DonationDate)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	return models.Donation{
		DonorName:     str(req.DonorName),
		Campaign:      str(req.Campaign),
		Amount:        req.Amount.Value,
		Method:        str(req.Method),
		DonationDate:  date,
		Note:          str(req.Note),
		SentToLabel:   str(req.SentToLabel),
		SentToDetails: str(req.SentToDetails),
		FromAccount:   str(req.FromAccount),
		Status:        status,
	}
}

func (req *donationRequest) update() donationstore.Update {
	upd := donationstore.Update{
		DonorName:     req.DonorName,
		Campaign:      req.Campaign,
		Method:        req.Method,
		DonationDate:  req.DonationDate,
		Note:          req.Note,
		SentToLabel:   req.SentToLabel,
		SentToDetails: req.SentToDetails,
		FromAccount:   req.FromAccount,
		Status:        req.Status,
	}
	if req.Amount.Valid {
		v := req.Amount.Value
		upd.Amount = &v
	}
	return upd
}
