// internal/app/features/memories/memories.go
package memories

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const notFound = "Memory not found."

// ServeList returns memories newest first. ?batch= narrows the wall.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Memories.List(ctx, query.Get(r, "batch"), paging.Parse(r))
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list memories failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"memories": list})
}

// ServeMemory returns one memory and whether the viewer likes it. Guests
// identify themselves with ?guestId=.
func (h *Handler) ServeMemory(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Memories.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load memory failed", err)
		return
	}

	liked := false
	if liker, ok := likerFor(r, query.Get(r, "guestId")); ok {
		if liked, err = h.Memories.HasLiked(ctx, id, liker); err != nil {
			h.ErrLog.LogServerError(w, r, "check like failed", err)
			return
		}
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"memory": m, "liked": liked})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/memories                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var req memoryRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode memory body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	m := req.model()
	m.Author = name
	m.AuthorID = uid

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Memories.Create(ctx, m)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create memory failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{"message": "Memory shared successfully.", "memory": created})
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH /api/memories/{id}                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleUpdate lets the author or an admin-set role edit a memory.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	var req memoryRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode memory body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if !h.mayModify(ctx, w, r, id) {
		return
	}

	m, err := h.Memories.Update(ctx, id, req.update())
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update memory failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"message": "Memory updated successfully.", "memory": m})
}

/*─────────────────────────────────────────────────────────────────────────────*
| DELETE /api/memories/{id}                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDelete removes a memory along with its likes and comments.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if !h.mayModify(ctx, w, r, id) {
		return
	}

	err := h.Memories.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete memory failed", err)
		return
	}
	jsonio.Message(w, http.StatusOK, "Memory deleted successfully.")
}

// mayModify loads the memory and writes 404 or 403 when the caller may not
// change it.
func (h *Handler) mayModify(ctx context.Context, w http.ResponseWriter, r *http.Request, id primitive.ObjectID) bool {
	m, err := h.Memories.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load memory failed", err)
		return false
	}
	if !authz.CanModify(r, m.AuthorID) {
		jsonio.Message(w, http.StatusForbidden, "Forbidden.")
		return false
	}
	return true
}
