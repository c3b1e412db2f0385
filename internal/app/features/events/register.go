// internal/app/features/events/register.go
package events

import (
	"context"
	"errors"
	"net/http"
	"strings"

	eventstore "github.com/dalemusser/alumnihub/internal/app/store/events"
	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type registerRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Batch    string `json:"batch"`
}

func currentEmail(r *http.Request) (string, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", false
	}
	return u.Email, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /api/events/{id}/register                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleRegister signs someone up for an event. Anonymous callers must give
// a name and email; a signed-in caller's are used when omitted.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	id, ok := eventID(r)
	if !ok {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}

	var req registerRequest
	if err := jsonio.DecodeOptional(r, &req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode registration body", err, "Invalid request body.")
		return
	}
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)

	var userID *primitive.ObjectID
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			userID = &oid
		}
		if req.FullName == "" {
			req.FullName = u.Name
		}
		if req.Email == "" {
			req.Email = u.Email
		}
	}

	if verr := inputval.New().
		Required("fullName", req.FullName).
		Required("email", req.Email).
		Email(req.Email).
		Err(); verr != nil {
		jsonio.Message(w, http.StatusBadRequest, verr.Message)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Events.GetByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		jsonio.Message(w, http.StatusNotFound, "Event not found.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading event", err)
		return
	}

	if err := eventstore.CheckRegistrationOpen(e, h.now()); err != nil {
		jsonio.Message(w, http.StatusBadRequest, registrationMessage(err))
		return
	}

	reg, err := h.Events.Register(ctx, e, models.EventRegistration{
		UserID:   userID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    strings.TrimSpace(req.Phone),
		Batch:    strings.TrimSpace(req.Batch),
	})
	if errors.Is(err, eventstore.ErrAlreadyRegistered) {
		jsonio.Message(w, http.StatusBadRequest, registrationMessage(err))
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "register for event failed", err)
		return
	}

	jsonio.Write(w, http.StatusCreated, jsonio.M{
		"message":      "Registration successful.",
		"registration": reg,
	})
}

func registrationMessage(err error) string {
	switch {
	case errors.Is(err, eventstore.ErrDeadlinePassed):
		return "Registration deadline has passed."
	case errors.Is(err, eventstore.ErrAlreadyRegistered):
		return "You have already registered for this event."
	default:
		return "Registration is not open for this event."
	}
}
