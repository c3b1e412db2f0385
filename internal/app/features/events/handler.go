// internal/app/features/events/handler.go
package events

import (
	"net/http"
	"time"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	eventstore "github.com/dalemusser/alumnihub/internal/app/store/events"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves public event listings, registration, and event admin.
type Handler struct {
	DB     *mongo.Database
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
	Events *eventstore.Store

	now func() time.Time
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Log:    logger,
		ErrLog: errLog,
		Events: eventstore.New(db),
		now:    time.Now,
	}
}

// SetClock replaces the time source used for deadline checks.
func (h *Handler) SetClock(now func() time.Time) {
	h.now = now
}

func eventID(r *http.Request) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	return oid, err == nil
}
