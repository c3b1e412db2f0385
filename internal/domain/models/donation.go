// internal/domain/models/donation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Donation statuses. Only received donations count toward a campaign.
const (
	DonationReceived = "received"
	DonationPending  = "pending"
	DonationRefunded = "refunded"
)

// DonationStatuses lists every donation status.
var DonationStatuses = []string{DonationReceived, DonationPending, DonationRefunded}

// DonationMethods lists the accepted payment methods.
var DonationMethods = []string{"bKash", "Nagad", "Bank", "Card", "Cash"}

// Donation is a single contribution.
//
// Campaign is free text matched against DonationCampaign.Title. A value that
// matches no campaign is kept but never aggregated.
type Donation struct {
	ID            primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	DonorName     string              `bson:"donor_name" json:"donorName"`
	Campaign      string              `bson:"campaign" json:"campaign"`
	Amount        float64             `bson:"amount" json:"amount"`
	Method        string              `bson:"method" json:"method"`
	DonationDate  string              `bson:"donation_date" json:"donationDate"` // YYYY-MM-DD
	Note          string              `bson:"note,omitempty" json:"note,omitempty"`
	SentToLabel   string              `bson:"sent_to_label,omitempty" json:"sentToLabel,omitempty"`
	SentToDetails string              `bson:"sent_to_details,omitempty" json:"sentToDetails,omitempty"`
	FromAccount   string              `bson:"from_account,omitempty" json:"fromAccount,omitempty"`
	Status        string              `bson:"status" json:"status"`
	UserID        *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// PublicDonation is the donor wall projection.
type PublicDonation struct {
	ID           string  `json:"id"`
	DonorName    string  `json:"donorName"`
	Campaign     string  `json:"campaign"`
	Amount       float64 `json:"amount"`
	DonationDate string  `json:"donationDate"`
}

// Public returns the donor wall projection of d.
func (d *Donation) Public() PublicDonation {
	return PublicDonation{
		ID:           d.ID.Hex(),
		DonorName:    d.DonorName,
		Campaign:     d.Campaign,
		Amount:       d.Amount,
		DonationDate: d.DonationDate,
	}
}
