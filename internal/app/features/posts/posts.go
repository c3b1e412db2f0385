// internal/app/features/posts/posts.go
package posts

import (
	"context"
	"errors"
	"net/http"
	"strings"

	poststore "github.com/dalemusser/alumnihub/internal/app/store/posts"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
)

const notFound = "Post not found."

/*─────────────────────────────────────────────────────────────────────────────*
| GET /api/posts                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList returns published posts. ?category= narrows the list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// ServeAdminList includes drafts.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Posts.List(ctx, poststore.Filter{
		PublishedOnly: publishedOnly,
		Category:      strings.ToLower(query.Get(r, "category")),
		Page:          paging.Parse(r),
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list posts failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"posts": list})
}

// ServePost returns one post. Unpublished posts are visible only to the
// admin set.
func (h *Handler) ServePost(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Posts.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && !p.IsPublished && !authz.IsAdmin(r)) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load post failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"post": p})
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/admin/posts                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode post body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	p := req.model()
	if _, name, uid, ok := authz.UserCtx(r); ok {
		p.Author = name
		p.AuthorID = &uid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Posts.Create(ctx, p)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create post failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{"message": "Post created successfully.", "post": created})
}

/*─────────────────────────────────────────────────────────────────────────────*
| PATCH/DELETE /api/admin/posts/{id}                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	var req postRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode post body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Posts.Update(ctx, id, req.update())
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update post failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"message": "Post updated successfully.", "post": p})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Posts.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete post failed", err)
		return
	}
	jsonio.Message(w, http.StatusOK, "Post deleted successfully.")
}
