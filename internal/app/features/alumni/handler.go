// internal/app/features/alumni/handler.go
package alumni

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	userstore "github.com/dalemusser/alumnihub/internal/app/store/users"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public alumni directory.
type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeDirectory)
	return r
}

// ServeDirectory lists active alumni, filtered by ?batch=, ?q= (name
// prefix) and ?featured=true. Only public profile fields are returned.
func (h *Handler) ServeDirectory(w http.ResponseWriter, r *http.Request) {
	f := userstore.DirectoryFilter{
		Batch:    query.Get(r, "batch"),
		Query:    query.Get(r, "q"),
		Featured: query.Get(r, "featured") == "true",
		Page:     paging.Parse(r),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.ListDirectory(ctx, f)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list alumni failed", err)
		return
	}

	out := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"alumni": out})
}
