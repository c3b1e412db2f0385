package auditlog_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/features/auditlog"
	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	"github.com/dalemusser/alumnihub/internal/app/store/audit"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (chi.Router, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "token", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := auditlog.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return auditlog.Routes(h, sm), testutil.NewFixtures(t, db)
}

type listBody struct {
	Events []struct {
		EventType string `json:"eventType"`
		Actor     string `json:"actor"`
		Target    string `json:"target"`
		Success   bool   `json:"success"`
	} `json:"events"`
	Page  int   `json:"page"`
	Pages int   `json:"pages"`
	Total int64 `json:"total"`
}

func TestServeList_ResolvesNamesAndFilters(t *testing.T) {
	router, fx := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	admin := fx.CreateAdmin(ctx, "Head Admin", "head@example.com")
	member := fx.CreateActiveAlumni(ctx, "New Member", "member@example.com")
	gone := primitive.NewObjectID()

	store := audit.New(fx.DB())
	for _, e := range []audit.Event{
		{Category: audit.CategoryAdmin, EventType: audit.EventUserCreated, ActorID: &admin.ID, UserID: &member.ID, Success: true},
		{Category: audit.CategoryAuth, EventType: audit.EventLoginFailedWrongPassword, UserID: &gone, Success: false},
	} {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "GET", "/?category=admin", nil), testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.Decode(t, &body)
	if body.Total != 1 || len(body.Events) != 1 {
		t.Fatalf("expected 1 admin event, got %+v", body)
	}
	ev := body.Events[0]
	if ev.Actor != "Head Admin" || ev.Target != "New Member" {
		t.Errorf("names not resolved: %+v", ev)
	}

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "GET", "/?category=auth", nil), testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)
	body = listBody{}
	rec.Decode(t, &body)
	if len(body.Events) != 1 || body.Events[0].Target != gone.Hex() || body.Events[0].Success {
		t.Errorf("unknown user should fall back to hex id: %+v", body.Events)
	}
}

func TestServeList_FiltersByUser(t *testing.T) {
	router, fx := newRouter(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	store := audit.New(fx.DB())
	for _, uid := range []primitive.ObjectID{a, a, b} {
		id := uid
		if err := store.Log(ctx, audit.Event{Category: audit.CategoryAuth, EventType: audit.EventLogout, UserID: &id, Success: true}); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "GET", "/?userId="+a.Hex(), nil), testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.Decode(t, &body)
	if body.Total != 2 {
		t.Errorf("total for user: got %d, want 2", body.Total)
	}
}

func TestServeList_EmptyHasOnePage(t *testing.T) {
	router, _ := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "GET", "/", nil), testutil.AdminUser()))
	rec.AssertStatus(t, http.StatusOK)

	var body listBody
	rec.Decode(t, &body)
	if body.Page != 1 || body.Pages != 1 || len(body.Events) != 0 {
		t.Errorf("unexpected empty listing: %+v", body)
	}
}

func TestServeList_Access(t *testing.T) {
	router, _ := newRouter(t)

	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.JSONRequest(t, "GET", "/", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)

	rec = testutil.NewRecorder()
	router.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "GET", "/", nil), testutil.ModeratorUser()))
	rec.AssertStatus(t, http.StatusForbidden)
}
