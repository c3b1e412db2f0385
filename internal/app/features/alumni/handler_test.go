package alumni_test

import (
	"net/http"
	"testing"

	"github.com/dalemusser/alumnihub/internal/app/features/alumni"
	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.uber.org/zap"
)

func TestServeDirectory_ActiveOnlyAndPublicFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateActiveAlumni(ctx, "Ayesha Khan", "ayesha@example.com")
	fx.CreateActiveAlumni(ctx, "Bilal Ahmed", "bilal@example.com")
	fx.CreateUser(ctx, "Pending Person", "pending@example.com", models.RoleAlumni, models.StatusPending)

	h := alumni.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeDirectory(rec, testutil.JSONRequest(t, "GET", "/api/alumni", nil))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Alumni []map[string]any `json:"alumni"`
	}
	rec.Decode(t, &body)
	if len(body.Alumni) != 2 {
		t.Fatalf("got %d alumni, want 2", len(body.Alumni))
	}
	for _, a := range body.Alumni {
		if _, ok := a["email"]; ok {
			t.Error("email must not be exposed in the directory")
		}
		if _, ok := a["phone"]; ok {
			t.Error("phone must not be exposed in the directory")
		}
	}
}

func TestServeDirectory_NamePrefix(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateActiveAlumni(ctx, "Ayesha Khan", "ayesha@example.com")
	fx.CreateActiveAlumni(ctx, "Bilal Ahmed", "bilal@example.com")

	h := alumni.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())

	rec := testutil.NewRecorder()
	h.ServeDirectory(rec, testutil.JSONRequest(t, "GET", "/api/alumni?q=bil", nil))
	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Alumni []models.PublicProfile `json:"alumni"`
	}
	rec.Decode(t, &body)
	if len(body.Alumni) != 1 || body.Alumni[0].FullName != "Bilal Ahmed" {
		t.Errorf("got %+v, want only Bilal Ahmed", body.Alumni)
	}
}
