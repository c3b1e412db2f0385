// internal/domain/models/donationcampaign.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentAccount is one place donors can send money to.
type PaymentAccount struct {
	Label   string `bson:"label" json:"label"`
	Details string `bson:"details" json:"details"`
}

// DonationCampaign is a fundraising goal.
//
// CollectedAmount is derived: the sum of received donations whose campaign
// equals Title. It is recomputed on donation writes, never incremented.
type DonationCampaign struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	TargetAmount    float64            `bson:"target_amount" json:"targetAmount"`
	CollectedAmount float64            `bson:"collected_amount" json:"collectedAmount"`
	Deadline        string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	BannerImage     string             `bson:"banner_image,omitempty" json:"bannerImage,omitempty"`
	PaymentAccounts []PaymentAccount   `bson:"payment_accounts" json:"paymentAccounts"`
	PaymentAccount  string             `bson:"payment_account,omitempty" json:"paymentAccount,omitempty"` // legacy, derived
	IsActive        bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// LegacyPaymentAccount flattens accounts into the single-string form older
// clients read: one "label: details" line per account.
func LegacyPaymentAccount(accounts []PaymentAccount) string {
	lines := make([]string, 0, len(accounts))
	for _, a := range accounts {
		switch {
		case a.Label != "" && a.Details != "":
			lines = append(lines, a.Label+": "+a.Details)
		case a.Details != "":
			lines = append(lines, a.Details)
		case a.Label != "":
			lines = append(lines, a.Label)
		}
	}
	return strings.Join(lines, "\n")
}
