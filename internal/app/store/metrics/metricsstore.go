package metricsstore

import (
	"context"

	donationstore "github.com/dalemusser/alumnihub/internal/app/store/donations"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals shown on the admin stats endpoint.
type Counts struct {
	UsersByStatus    map[string]int64 `json:"usersByStatus"`
	TotalUsers       int64            `json:"totalUsers"`
	Events           int64            `json:"events"`
	UpcomingEvents   int64            `json:"upcomingEvents"`
	Memories         int64            `json:"memories"`
	ActiveCampaigns  int64            `json:"activeCampaigns"`
	ReceivedAmount   float64          `json:"receivedAmount"`
	ReceivedCount    int64            `json:"receivedDonations"`
	PendingDonations int64            `json:"pendingDonations"`
}

// FetchDashboardCounts returns the high-level counts for the admin stats view.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	out := Counts{UsersByStatus: map[string]int64{}}

	if byStatus, err := userstore.New(db).CountByStatus(ctx); err == nil {
		out.UsersByStatus = byStatus
		for _, n := range byStatus {
			out.TotalUsers += n
		}
	}

	if n, err := db.Collection("events").CountDocuments(ctx, bson.M{}); err == nil {
		out.Events = n
	}
	if n, err := db.Collection("events").CountDocuments(ctx, bson.M{"status": models.EventUpcoming}); err == nil {
		out.UpcomingEvents = n
	}
	if n, err := db.Collection("memories").CountDocuments(ctx, bson.M{}); err == nil {
		out.Memories = n
	}
	if n, err := db.Collection("donation_campaigns").CountDocuments(ctx, bson.M{"is_active": true}); err == nil {
		out.ActiveCampaigns = n
	}

	if tot, err := donationstore.New(db).FetchTotals(ctx); err == nil {
		out.ReceivedAmount = tot.ReceivedAmount
		out.ReceivedCount = tot.ReceivedCount
		out.PendingDonations = tot.PendingCount
	}

	return out
}
