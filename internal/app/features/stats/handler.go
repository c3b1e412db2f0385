// internal/app/features/stats/handler.go
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/store/audit"
	metricsstore "github.com/dalemusser/alumnihub/internal/app/store/metrics"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// statsTimeout covers every count the endpoint runs.
const statsTimeout = 10 * time.Second

// failedLoginCap bounds the failed-login scan.
const failedLoginCap = 1000

type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	Audits *audit.Store
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger, Audits: audit.New(db)}
}

// Routes mounts the back-office totals for super admins and admins.
// Typically: r.Mount("/api/admin/stats", stats.Routes(h, sm))
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.With(sm.RequireRole(authz.FinanceRoles...)).Get("/", h.Serve)
	return r
}

// Serve returns user counts by status, event and memory counts, donation
// totals and failed sign-ins over the last day. A counter whose query
// fails reads as zero.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), statsTimeout)
	defer cancel()

	counts := metricsstore.FetchDashboardCounts(ctx, h.DB)

	failed, err := h.Audits.GetFailedLogins(ctx, time.Now().Add(-24*time.Hour), failedLoginCap)
	if err != nil {
		h.Log.Warn("failed-login count unavailable", zap.Error(err))
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{
		"stats":           counts,
		"failedLogins24h": len(failed),
	})
}
