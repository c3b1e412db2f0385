package bootstrap

import (
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/alumnihub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func TestEnsureSuperAdmin_PromotesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "Founding Member", "founder@example.com", models.RoleAlumni, models.StatusPending)

	deps := DBDeps{MongoDatabase: db}
	if err := ensureSuperAdmin(ctx, deps, "  Founder@Example.com ", zap.NewNop()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	var u models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"email": "founder@example.com"}).Decode(&u); err != nil {
		t.Fatalf("find user: %v", err)
	}
	if u.Role != models.RoleSuperAdmin {
		t.Errorf("role: got %q, want %q", u.Role, models.RoleSuperAdmin)
	}
	if u.Status != models.StatusActive {
		t.Errorf("status: got %q, want %q", u.Status, models.StatusActive)
	}
}

func TestEnsureSuperAdmin_UnknownEmailCreatesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{MongoDatabase: db}
	if err := ensureSuperAdmin(ctx, deps, "nobody@example.com", zap.NewNop()); err != nil {
		t.Fatalf("ensureSuperAdmin failed: %v", err)
	}

	n, err := db.Collection("users").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("count users: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no users to be created, got %d", n)
	}
}

func TestMaintenanceJobs_OffByDefault(t *testing.T) {
	for _, k := range appConfigKeys {
		if k.Name == "reconcile_interval" || k.Name == "token_cleanup_interval" {
			if k.Default != "0s" {
				t.Errorf("%s default: got %v, want 0s", k.Name, k.Default)
			}
		}
	}

	if jobs := maintenanceJobs(AppConfig{}, DBDeps{}, zap.NewNop()); len(jobs) != 0 {
		t.Errorf("zero intervals should schedule nothing, got %d jobs", len(jobs))
	}
}

func TestMaintenanceJobs_Enabled(t *testing.T) {
	cfg := AppConfig{ReconcileInterval: 15 * time.Minute, TokenCleanupInterval: time.Hour}
	jobs := maintenanceJobs(cfg, DBDeps{}, zap.NewNop())
	if len(jobs) != 2 {
		t.Fatalf("got %d jobs, want 2", len(jobs))
	}
	if jobs[0].Name != "campaign-reconcile" || jobs[0].Interval != 15*time.Minute {
		t.Errorf("first job: %s every %v", jobs[0].Name, jobs[0].Interval)
	}
	if jobs[1].Name != "reset-token-cleanup" || jobs[1].Interval != time.Hour {
		t.Errorf("second job: %s every %v", jobs[1].Name, jobs[1].Interval)
	}

	only := maintenanceJobs(AppConfig{TokenCleanupInterval: time.Hour}, DBDeps{}, zap.NewNop())
	if len(only) != 1 || only[0].Name != "reset-token-cleanup" {
		t.Errorf("cleanup only: got %+v", only)
	}
}
