// internal/app/features/events/admin.go
package events

import (
	"context"
	"errors"
	"net/http"

	eventstore "github.com/dalemusser/alumnihub/internal/app/store/events"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/mongo"
)

// ServeAdminList returns every event, drafts included.
func (h *Handler) ServeAdminList(w http.ResponseWriter, r *http.Request) {
	status := query.Get(r, "status")
	if verr := inputval.New().OneOf("status", status, models.EventStatuses).Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	events, err := h.Events.List(ctx, eventstore.Filter{Status: status, IncludeDrafts: true, Page: paging.Parse(r)})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list events failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"events": events})
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode event body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(true); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.Create(ctx, req.model())
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create event failed", err)
		return
	}
	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message": "Event created successfully.",
		"event":   e,
	})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}

	var req eventRequest
	if err := jsonio.Decode(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode event body", err, "Invalid request body.")
		return
	}
	req.normalize()
	if verr := req.check(false); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.Update(ctx, id, req.update())
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update event failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{
		"message": "Event updated successfully.",
		"event":   e,
	})
}

// HandleDelete removes an event and its registrations.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Events.Delete(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete event failed", err)
		return
	}
	jsonio.Message(w, http.StatusOK, "Event deleted successfully.")
}

func (h *Handler) ServeRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Events.GetByID(ctx, id); errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	} else if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading event", err)
		return
	}

	regs, err := h.Events.ListRegistrations(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list registrations failed", err)
		return
	}
	jsonio.Write(w, http.StatusOK, jsonio.M{"registrations": regs})
}
