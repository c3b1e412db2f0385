// internal/app/features/gallery/handler.go
package gallery

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/alumnihub/internal/app/features/errors"
	gallerystore "github.com/dalemusser/alumnihub/internal/app/store/gallery"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const notFound = "Gallery item not found."

type Handler struct {
	DB      *mongo.Database
	Log     *zap.Logger
	ErrLog  *uierrors.ErrorLogger
	Gallery *gallerystore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		ErrLog:  errLog,
		Gallery: gallerystore.New(db),
	}
}

// Routes mounts the public gallery.
// Typically: r.Mount("/api/gallery", gallery.Routes(h))
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePublic)
	return r
}

// AdminRoutes mounts gallery management for the admin set.
// Typically: r.Mount("/api/admin/gallery", gallery.AdminRoutes(h, sm))
func AdminRoutes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireRole(authz.AdminRoles...))

		pr.Get("/", h.ServeAdminList)
		pr.Post("/", h.HandleCreate)
		pr.Patch("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}

type itemRequest struct {
	Title       *string         `json:"title"`
	ImageURL    *string         `json:"imageUrl"`
	Description *string         `json:"description"`
	Category    *string         `json:"category"`
	Order       inputval.Number `json:"order"`
	IsActive    *bool           `json:"isActive"`
}

func (req *itemRequest) normalize() {
	for _, p := range []*string{req.Title, req.Description} {
		if p != nil {
			*p = htmlsanitize.StripTags(*p)
		}
	}
	for _, p := range []*string{req.ImageURL, req.Category} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
}

func (req *itemRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating || req.Title != nil {
		c.Required("title", deref(req.Title))
	}
	if creating || req.ImageURL != nil {
		c.Required("imageUrl", deref(req.ImageURL))
	}
	return c.NonNegative("order", req.Order).Err()
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/gallery                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

// ServePublic lists active items. ?category= narrows the list.
func (h *Handler) ServePublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Gallery.List(ctx, activeOnly, query.Get(r, "category"))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list gallery failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"items": items})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST/PATCH/DELETE /api/admin/gallery                                        |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode gallery body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	g := models.GalleryItem{
		Title:       deref(req.Title),
		ImageURL:    deref(req.ImageURL),
		Description: deref(req.Description),
		Category:    deref(req.Category),
		Order:       req.Order.Int(),
		IsActive:    true,
	}
	if req.IsActive != nil {
		g.IsActive = *req.IsActive
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Gallery.Create(ctx, g)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create gallery item failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{"message": "Gallery item created successfully.", "item": created})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	var req itemRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode gallery body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	upd := gallerystore.Update{
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    req.IsActive,
	}
	if req.Order.Valid {
		n := req.Order.Int()
		upd.Order = &n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Gallery.Update(ctx, id, upd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update gallery item failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"message": "Gallery item updated successfully.", "item": g})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Gallery.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete gallery item failed", err)
		return
	}
	jsonio.Message(w, http.StatusOK, "Gallery item deleted successfully.")
}
