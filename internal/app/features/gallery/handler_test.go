package gallery_test

import (
	"net/http"
	"testing"
	"time"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	"github.com/dalemusser/alumnihub/internal/app/features/gallery"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.uber.org/zap"
)

func newRouters(t *testing.T) (public, admin http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager("test-session-key-for-testing-only-0123", "token", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	h := gallery.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return gallery.Routes(h), gallery.AdminRoutes(h, sm)
}

func TestGallery_AdminCRUDAndPublicView(t *testing.T) {
	public, admin := newRouters(t)
	mod := testutil.ModeratorUser()

	rec := testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "POST", "/", map[string]any{
		"title": "Campus", "imageUrl": "https://img/campus.jpg", "order": "2", "category": "campus",
	}), mod))
	rec.AssertStatus(t, http.StatusCreated)
	var body struct {
		Item models.GalleryItem `json:"item"`
	}
	rec.Decode(t, &body)
	if !body.Item.IsActive || body.Item.Order != 2 {
		t.Fatalf("created: %+v", body.Item)
	}
	id := body.Item.ID.Hex()

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "PATCH", "/"+id, map[string]any{"isActive": false}), mod))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	public.ServeHTTP(rec, testutil.JSONRequest(t, "GET", "/", nil))
	rec.AssertStatus(t, http.StatusOK)
	var list struct {
		Items []models.GalleryItem `json:"items"`
	}
	rec.Decode(t, &list)
	if len(list.Items) != 0 {
		t.Fatalf("inactive item shown publicly: %+v", list.Items)
	}

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "DELETE", "/"+id, nil), mod))
	rec.AssertStatus(t, http.StatusOK)

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "DELETE", "/"+id, nil), mod))
	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertMessage(t, "Gallery item not found.")
}

func TestGallery_Validation(t *testing.T) {
	_, admin := newRouters(t)

	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing", map[string]any{"description": "x"}, "Missing required fields: title, imageUrl."},
		{"negative order", map[string]any{"title": "t", "imageUrl": "u", "order": -1}, "Invalid order."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "POST", "/", tt.body), testutil.AdminUser()))
			rec.AssertStatus(t, http.StatusBadRequest)
			rec.AssertMessage(t, tt.want)
		})
	}
}

func TestGallery_AlumniForbidden(t *testing.T) {
	_, admin := newRouters(t)

	rec := testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.WithUser(testutil.JSONRequest(t, "POST", "/", map[string]any{
		"title": "t", "imageUrl": "u",
	}), testutil.AlumniUser()))
	rec.AssertStatus(t, http.StatusForbidden)

	rec = testutil.NewRecorder()
	admin.ServeHTTP(rec, testutil.JSONRequest(t, "GET", "/", nil))
	rec.AssertStatus(t, http.StatusUnauthorized)
}
