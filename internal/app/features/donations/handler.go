// internal/app/features/donations/handler.go
package donations

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	campaignstore "github.com/dalemusser/alumnihub/internal/app/store/campaigns"
	donationstore "github.com/dalemusser/alumnihub/internal/app/store/donations"
	"github.com/dalemusser/alumnihub/internal/app/system/auditlog"
	"github.com/dalemusser/alumnihub/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves donation submission, the donor wall, and donation admin.
// Every write that can move a campaign total recomputes it in the same
// transaction.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	AuditLog  *auditlog.Logger
	Donations *donationstore.Store
	Campaigns *campaignstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		AuditLog:  audit,
		Donations: donationstore.New(db),
		Campaigns: campaignstore.New(db),
	}
}

func donationID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}

func (h *Handler) inTxn(ctx context.Context, fn func(ctx context.Context) error) error {
	return txn.Run(ctx, h.DB.Client(), h.Log, fn)
}

// recalc recomputes each distinct non-empty title once.
func (h *Handler) recalc(ctx context.Context, titles ...string) error {
	seen := make(map[string]bool, len(titles))
	for _, t := range titles {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		if err := h.Campaigns.RecalcCollected(ctx, t); err != nil {
			return err
		}
	}
	return nil
}
