package tasks_test

import (
	"testing"
	"time"

	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/tasks"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestCampaignReconcileJob_RepairsDrift(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	c := fx.CreateCampaign(ctx, "Scholarship", 10000)
	fx.CreateDonation(ctx, "A", "Scholarship", 400, models.DonationReceived)
	if _, err := db.Collection("donation_campaigns").UpdateOne(ctx,
		bson.M{"_id": c.ID}, bson.M{"$set": bson.M{"collected_amount": 99999.0}}); err != nil {
		t.Fatalf("seed drift: %v", err)
	}

	job := tasks.CampaignReconcileJob(campaignstore.New(db), zap.NewNop(), time.Hour)
	if job.Interval != time.Hour {
		t.Errorf("interval: got %v", job.Interval)
	}
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got, err := campaignstore.New(db).GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CollectedAmount != 400 {
		t.Errorf("collected: got %v, want 400", got.CollectedAmount)
	}
}

func TestResetTokenCleanupJob(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	users := userstore.New(db)
	expired := fx.CreateActiveAlumni(ctx, "Expired", "expired@example.com")
	live := fx.CreateActiveAlumni(ctx, "Live", "live@example.com")
	if err := users.SetResetToken(ctx, expired.ID, "old-digest", time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}
	if err := users.SetResetToken(ctx, live.ID, "new-digest", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}

	if err := tasks.ResetTokenCleanupJob(users, zap.NewNop(), time.Hour).Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if n, _ := db.Collection("users").CountDocuments(ctx, bson.M{"password_reset_token": "old-digest"}); n != 0 {
		t.Error("expired token should be cleared")
	}
	if n, _ := db.Collection("users").CountDocuments(ctx, bson.M{"password_reset_token": "new-digest"}); n != 1 {
		t.Error("live token should be kept")
	}
}
