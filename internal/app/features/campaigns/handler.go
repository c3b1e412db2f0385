// internal/app/features/campaigns/handler.go
package campaigns

import (
	"net/http"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	"github.com/dalemusser/alumnihub/internal/app/system/auditlog"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves fundraising campaigns.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	AuditLog  *auditlog.Logger
	Campaigns *campaignstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		AuditLog:  audit,
		Campaigns: campaignstore.New(db),
	}
}

// Routes mounts the public campaign list.
// Typically: r.Mount("/api/donation-campaigns", campaigns.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeActive)
	return r
}

// AdminRoutes mounts campaign management for super admins and admins.
// Typically: r.Mount("/api/admin/donation-campaigns", campaigns.AdminRoutes(h, sm))
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.FinanceRoles...))

		pr.Get("/", h.ServeAll)
		pr.Post("/", h.HandleCreate)
		pr.Post("/recalculate", h.HandleRecalculate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

func campaignID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}
