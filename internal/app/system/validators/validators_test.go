package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/validators"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func setup(t *testing.T) *mongo.Database {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	return db
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := validators.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesCollections(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		t.Fatalf("ListCollectionNames failed: %v", err)
	}
	have := make(map[string]bool, len(names))
	for _, n := range names {
		have[n] = true
	}
	for _, want := range []string{
		"users", "events", "event_registrations", "donations", "donation_campaigns",
		"memories", "memory_likes", "memory_comments", "gallery_items", "slides", "posts",
	} {
		if !have[want] {
			t.Errorf("expected collection %q to exist", want)
		}
	}
}

func TestValidators_RejectBadDocuments(t *testing.T) {
	db := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	now := time.Now().UTC()

	tests := []struct {
		name string
		coll string
		doc  bson.M
	}{
		{"user without email", "users", bson.M{"full_name": "A", "role": models.RoleAlumni, "status": models.StatusPending}},
		{"user with unknown role", "users", bson.M{"full_name": "A", "email": "a@x.org", "role": "guest", "status": models.StatusActive}},
		{"user with blank name", "users", bson.M{"full_name": "  ", "email": "a@x.org", "role": models.RoleAlumni, "status": models.StatusActive}},
		{"event with unknown status", "events", bson.M{"title": "T", "date": "2030-01-01", "status": "cancelled"}},
		{"negative donation", "donations", bson.M{"donor_name": "D", "campaign": "C", "amount": -5.0, "method": "Cash", "status": models.DonationReceived}},
		{"donation with unknown method", "donations", bson.M{"donor_name": "D", "campaign": "C", "amount": 5.0, "method": "Cheque", "status": models.DonationReceived}},
		{"campaign without target", "donation_campaigns", bson.M{"title": "C"}},
		{"memory with too many images", "memories", bson.M{
			"title": "M", "author_id": primitive.NewObjectID(),
			"images": bson.A{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"},
		}},
		{"like with bad key", "memory_likes", bson.M{"memory_id": primitive.NewObjectID(), "liker_key": "someone"}},
		{"comment without author", "memory_comments", bson.M{"memory_id": primitive.NewObjectID(), "text": "hi", "created_at": now}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.Collection(tt.coll).InsertOne(ctx, tt.doc); err == nil {
				t.Errorf("expected %s insert to be rejected", tt.coll)
			}
		})
	}
}

func TestValidators_AcceptStoredShapes(t *testing.T) {
	db := setup(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u := fx.CreateActiveAlumni(ctx, "Valid Alumni", "valid@example.com")
	fx.CreateEvent(ctx, "Reunion", models.EventUpcoming, true, "")
	fx.CreateCampaign(ctx, "Fund", 1000)
	fx.CreateDonation(ctx, "Donor", "Fund", 10, models.DonationPending)
	fx.CreateMemory(ctx, "Memory", u)
}
