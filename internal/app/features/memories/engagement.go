// internal/app/features/memories/engagement.go
package memories

import (
	"context"
	"errors"
	"net/http"
	"strings"

	memorystore "github.com/dalemusser/alumnihub/internal/app/store/memories"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// likerFor identifies the viewer: the signed-in user, else the
// client-generated guest ID. The guest ID is not verified.
func likerFor(r *http.Request, guestID string) (memorystore.Liker, bool) {
	if _, _, uid, ok := authz.UserCtx(r); ok {
		return memorystore.Liker{UserID: &uid}, true
	}
	guestID = strings.TrimSpace(guestID)
	if guestID == "" {
		return memorystore.Liker{}, false
	}
	return memorystore.Liker{GuestID: guestID}, true
}

// exists writes 404 or 500 and returns false when the memory cannot be used.
func (h *Handler) exists(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	_, err := h.Memories.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load memory failed", err)
		return false
	}
	return true
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/memories/{id}/like                                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleLike toggles the viewer's like and returns the new state.
func (h *Handler) HandleLike(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	var req struct {
		GuestID string `json:"guestId"`
	}
	if err := jsonio.DecodeOptional(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode like body", err, "Invalid request body.")
		return
	}
	liker, ok := likerFor(r, req.GuestID)
	if !ok {
		jsonio.Message(w, http.StatusBadRequest, "Guest ID is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.exists(ctx, w, r, id) {
		return
	}
	liked, likes, err := h.Memories.ToggleLike(ctx, id, liker)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "toggle like failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"liked": liked, "likes": likes})
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET/POST /api/memories/{id}/comments                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeComments lists a memory's comments oldest first.
func (h *Handler) ServeComments(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.exists(ctx, w, r, id) {
		return
	}
	list, err := h.Memories.ListComments(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list comments failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"comments": list})
}

// HandleComment appends a comment. Guests must give a name; signed-in
// users comment under their account name.
func (h *Handler) HandleComment(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	var req struct {
		Text       string `json:"text"`
		AuthorName string `json:"authorName"`
	}
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode comment body", err, "Invalid request body.")
		return
	}

	c := models.MemoryComment{
		MemoryID:   id,
		Text:       htmlsanitize.StripTags(req.Text),
		AuthorName: htmlsanitize.StripTags(req.AuthorName),
	}
	if verr := inputval.New().Required("text", c.Text).Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}
	if _, name, uid, ok := authz.UserCtx(r); ok {
		c.AuthorName = name
		c.UserID = &uid
	} else if c.AuthorName == "" {
		jsonio.Message(w, http.StatusBadRequest, "Author name is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.exists(ctx, w, r, id) {
		return
	}
	created, err := h.Memories.AddComment(ctx, c)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "add comment failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{"message": "Comment added successfully.", "comment": created})
}
