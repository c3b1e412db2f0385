package indexes_test

import (
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/indexes"
	"github.com/dalemusser/alumnihub/internal/testutil"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := map[string]bool{}
	for cur.Next(ctx) {
		var ix bson.M
		if err := cur.Decode(&ix); err != nil {
			t.Fatalf("decode index: %v", err)
		}
		names[ix["name"].(string)] = true
	}
	return names
}

func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t) // runs EnsureAll once
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesUniqueIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	want := map[string]string{
		"users":               "uniq_users_email",
		"donation_campaigns":  "uniq_campaigns_title",
		"event_registrations": "uniq_eventreg_event_email",
		"memory_likes":        "uniq_memorylikes_memory_liker",
	}
	for coll, name := range want {
		if !indexNames(t, db, coll)[name] {
			t.Errorf("%s: missing index %s", coll, name)
		}
	}
}

func TestEnsureAll_RegistrationUniqueEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	eventID := primitive.NewObjectID()
	regs := db.Collection("event_registrations")
	doc := bson.M{"event_id": eventID, "email": "a@b.com", "created_at": time.Now()}

	if _, err := regs.InsertOne(ctx, doc); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := regs.InsertOne(ctx, bson.M{"event_id": eventID, "email": "a@b.com"})
	if !wafflemongo.IsDup(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}

	// same email, different event is fine
	if _, err := regs.InsertOne(ctx, bson.M{"event_id": primitive.NewObjectID(), "email": "a@b.com"}); err != nil {
		t.Errorf("insert for other event: %v", err)
	}
}

func TestEnsureAll_ReplacesNonUniqueIndex(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	coll := db.Collection("donation_campaigns")
	if _, err := coll.Indexes().DropOne(ctx, "uniq_campaigns_title"); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "title", Value: 1}}}); err != nil {
		t.Fatalf("create plain index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll: %v", err)
	}
	names := indexNames(t, db, "donation_campaigns")
	if !names["uniq_campaigns_title"] || names["title_1"] {
		t.Errorf("expected title_1 replaced by uniq_campaigns_title, got %v", names)
	}
}
