// internal/app/features/slideshow/slides.go
package slideshow

import (
	"context"
	"errors"
	"net/http"
	"strings"

	slidestore "github.com/dalemusser/alumnihub/internal/app/store/slides"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

const notFound = "Slide not found."

type slideRequest struct {
	Title    *string         `json:"title"`
	Subtitle *string         `json:"subtitle"`
	ImageURL *string         `json:"imageUrl"`
	LinkURL  *string         `json:"linkUrl"`
	Order    inputval.Number `json:"order"`
	IsActive *bool           `json:"isActive"`
}

func (req *slideRequest) normalize() {
	if req.Title != nil {
		*req.Title = htmlsanitize.StripTags(*req.Title)
	}
	if req.Subtitle != nil {
		*req.Subtitle = htmlsanitize.StripTags(*req.Subtitle)
	}
	if req.ImageURL != nil {
		*req.ImageURL = strings.TrimSpace(*req.ImageURL)
	}
	if req.LinkURL != nil {
		*req.LinkURL = strings.TrimSpace(*req.LinkURL)
	}
}

func (req *slideRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating {
		c.Required("title", val(req.Title)).Required("imageUrl", val(req.ImageURL))
	} else {
		if req.Title != nil {
			c.Required("title", *req.Title)
		}
		if req.ImageURL != nil {
			c.Required("imageUrl", *req.ImageURL)
		}
	}
	return c.NonNegative("order", req.Order).Err()
}

func val(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// ServePublic lists active slides in display order.
func (h *Handler) ServePublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ServeAdminList includes hidden slides.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	slides, err := h.Slides.List(ctx, activeOnly)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list slides failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"slides": slides})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req slideRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode slide body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	sl := models.Slide{
		Title:    val(req.Title),
		Subtitle: val(req.Subtitle),
		ImageURL: val(req.ImageURL),
		LinkURL:  val(req.LinkURL),
		Order:    req.Order.Int(),
		IsActive: req.IsActive == nil || *req.IsActive,
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Slides.Create(ctx, sl)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create slide failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{"message": "Slide created successfully.", "slide": created})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := slideID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	var req slideRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode slide body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	upd := slidestore.Update{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		IsActive: req.IsActive,
	}
	if req.Order.Valid {
		n := req.Order.Int()
		upd.Order = &n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	sl, err := h.Slides.Update(ctx, id, upd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update slide failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"message": "Slide updated successfully.", "slide": sl})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := slideID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Slides.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete slide failed", err)
		return
	}
	jsonio.Message(w, http.StatusOK, "Slide deleted successfully.")
}
