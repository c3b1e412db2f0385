package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/store/audit"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_LogAndQuery(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	uid := primitive.NewObjectID()
	for _, typ := range []string{audit.EventLoginSuccess, audit.EventLogout} {
		if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: typ, UserID: &uid, Success: true}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
	if err := store.Log(ctx, audit.Event{Category: audit.CategoryAdmin, EventType: audit.EventUserCreated, Success: true}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	byUser, err := store.Query(ctx, audit.QueryFilter{UserID: &uid, Limit: 10})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(byUser) != 2 {
		t.Errorf("Query: got %d events, want 2", len(byUser))
	}
	if byUser[0].Timestamp.Before(byUser[1].Timestamp) {
		t.Error("events should be newest first")
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Category: audit.CategoryAdmin})
	if err != nil {
		t.Fatalf("CountByFilter: %v", err)
	}
	if n != 1 {
		t.Errorf("admin count: got %d, want 1", n)
	}
}

func TestStore_GetFailedLogins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_ = store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword})
	_ = store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedInactive})
	_ = store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLoginSuccess, Success: true})

	events, err := store.GetFailedLogins(ctx, time.Now().Add(-time.Hour), 10)
	if err != nil {
		t.Fatalf("GetFailedLogins: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d failed logins, want 2", len(events))
	}
}
