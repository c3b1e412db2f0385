// internal/app/features/auditlog/list.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/store/audit"
	"github.com/dalemusser/alumnihub/internal/app/system/jsonio"
	"github.com/dalemusser/alumnihub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const pageSize = 50

// entry is one audit event as the back office sees it. Actor and target
// ids are resolved to names where the account still exists.
type entry struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"eventType"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failureReason,omitempty"`
	IP            string            `json:"ip"`
	Actor         string            `json:"actor,omitempty"`
	Target        string            `json:"target,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// parseFilter reads category, eventType, userId, startDate, endDate
// (YYYY-MM-DD) and page. Unparseable ids and dates are ignored.
func parseFilter(r *http.Request) (audit.QueryFilter, int) {
	page := 1
	if p, err := strconv.Atoi(query.Get(r, "page")); err == nil && p > 0 {
		page = p
	}

	f := audit.QueryFilter{
		Category:  strings.TrimSpace(query.Get(r, "category")),
		EventType: strings.TrimSpace(query.Get(r, "eventType")),
		Limit:     pageSize,
		Offset:    int64((page - 1) * pageSize),
	}
	if oid, err := primitive.ObjectIDFromHex(query.Get(r, "userId")); err == nil {
		f.UserID = &oid
	}
	if t, err := time.Parse("2006-01-02", query.Get(r, "startDate")); err == nil {
		f.StartTime = &t
	}
	if t, err := time.Parse("2006-01-02", query.Get(r, "endDate")); err == nil {
		end := t.Add(24*time.Hour - time.Second)
		f.EndTime = &end
	}
	return f, page
}

// ServeList handles GET /api/admin/audit.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	filter, page := parseFilter(r)

	events, err := h.Events.Query(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "audit query failed", err)
		return
	}
	total, err := h.Events.CountByFilter(ctx, filter)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "audit count failed", err)
		return
	}

	ids := make([]primitive.ObjectID, 0, 2*len(events))
	for _, e := range events {
		if e.ActorID != nil {
			ids = append(ids, *e.ActorID)
		}
		if e.UserID != nil {
			ids = append(ids, *e.UserID)
		}
	}
	names, err := h.Users.NamesByIDs(ctx, ids)
	if err != nil {
		h.ErrLog.Warn(r, "audit name lookup failed", err)
		names = nil
	}
	name := func(id *primitive.ObjectID) string {
		if id == nil {
			return ""
		}
		if n, ok := names[*id]; ok {
			return n
		}
		return id.Hex()
	}

	out := make([]entry, 0, len(events))
	for _, e := range events {
		out = append(out, entry{
			ID:            e.ID.Hex(),
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			IP:            e.IP,
			Actor:         name(e.ActorID),
			Target:        name(e.UserID),
			Details:       e.Details,
		})
	}

	pages := int((total + pageSize - 1) / pageSize)
	if pages < 1 {
		pages = 1
	}
	jsonio.Write(w, http.StatusOK, map[string]any{
		"events": out,
		"page":   page,
		"pages":  pages,
		"total":  total,
	})
}
