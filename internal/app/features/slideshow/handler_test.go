package slideshow_test

import (
	"net/http"
	"testing"
	"time"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	"github.com/dalemusser/alumnihub/internal/app/features/slideshow"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.uber.org/zap"
)

func TestSlideshow_OrderAndVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "token", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := slideshow.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	public, admin := slideshow.Routes(h), slideshow.AdminRoutes(h, sm)
	user := testutil.AdminUser()

	for _, body := range []map[string]any{
		{"title": "Second", "imageUrl": "b.jpg", "order": 2},
		{"title": "First", "imageUrl": "a.jpg", "order": 1},
		{"title": "Hidden", "imageUrl": "c.jpg", "order": 0, "isActive": false},
	} {
		rec := testutil.NewRecorder()
		admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "POST", "/", body), user))
		rec.AssertStatus(t, http.StatusCreated)
	}

	rec := testutil.NewRecorder()
	public.ServeHTTP(rec, testutil.JSONRequest(t, "GET", "/", nil))
	rec.AssertStatus(t, http.StatusOK)
	var got struct {
		Slides []models.Slide `json:"slides"`
	}
	rec.Decode(t, &got)
	if len(got.Slides) != 2 || got.Slides[0].Title != "First" || got.Slides[1].Title != "Second" {
		t.Fatalf("public slides: %+v", got.Slides)
	}

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "GET", "/", nil), user))
	rec.AssertStatus(t, http.StatusOK)
	rec.Decode(t, &got)
	if len(got.Slides) != 3 {
		t.Fatalf("admin slides: got %d, want 3", len(got.Slides))
	}
}

func TestSlideshow_UpdateValidationAndNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "token", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := slideshow.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	admin := slideshow.AdminRoutes(h, sm)
	user := testutil.ModeratorUser()

	rec := testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "PATCH", "/0123456789abcdef01234567", map[string]any{"title": "x"}), user))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "Slide not found.")

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "PATCH", "/0123456789abcdef01234567", map[string]any{"title": "  "}), user))
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertMessage(t, "Missing required fields: title.")
}
