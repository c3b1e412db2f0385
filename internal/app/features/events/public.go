// internal/app/features/events/public.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventstore "github.com/dalemusser/alumnihub/internal/app/store/events"
	"github.com/dalemusser/alumnihub/internal/app/system/authz"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeList returns published events (never drafts), soonest first.
// ?status=upcoming|completed narrows the list.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if verr := inputval.New().
		OneOf("status", status, []string{models.EventUpcoming, models.EventCompleted}).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.List(ctx, eventstore.Filter{Status: status, Page: paging.Parse(r)})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list events failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"events": events})
}

// ServeEvent returns one event. Drafts are visible to the admin set only.
func (h *Handler) ServeEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) || (err == nil && e.Status == models.EventDraft && !authz.IsAdmin(r)) {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading event", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"event": e})
}

// myRegistration is a registration with its event inlined. Event is nil
// when the event has since been removed.
type myRegistration struct {
	models.EventRegistration
	Event *models.Event `json:"event,omitempty"`
}

// ServeMyRegistrations lists the caller's registrations, matched by user ID
// or by the email they signed up with, newest first.
func (h *Handler) ServeMyRegistrations(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		jsonio.Message(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}
	email, _ := currentEmail(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	regs, err := h.Events.ListUserRegistrations(ctx, uid, email)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list registrations failed", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, len(regs))
	for _, reg := range regs {
		ids = append(ids, reg.EventID)
	}
	byID, err := h.Events.GetByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load registered events failed", err)
		return
	}

	out := make([]myRegistration, 0, len(regs))
	for _, reg := range regs {
		item := myRegistration{EventRegistration: reg}
		if e, ok := byID[reg.EventID]; ok {
			item.Event = &e
		}
		out = append(out, item)
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"registrations": out})
}
