// internal/app/features/events/request.go
package events

import (
	"strings"
	"time"

	eventstore "github.com/dalemusser/alumnihub/internal/app/store/events"
	"github.com/dalemusser/alumnihub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/alumnihub/internal/app/system/inputval"
	"github.com/dalemusser/alumnihub/internal/domain/models"
)

// eventRequest is shared by create and update. On update, absent fields
// are left alone.
type eventRequest struct {
	Title                *string         `json:"title"`
	Description          *string         `json:"description"`
	Date                 *string         `json:"date"`
	Time                 *string         `json:"time"`
	Location             *string         `json:"location"`
	Type                 *string         `json:"type"`
	ExpectedAttendees    inputval.Number `json:"expectedAttendees"`
	Status               *string         `json:"status"`
	IsRegistrationOpen   *bool           `json:"isRegistrationOpen"`
	RegistrationDeadline *string         `json:"registrationDeadline"`
	BannerImage          *string         `json:"bannerImage"`
}

func (req *eventRequest) normalize() {
	for _, p := range []*string{req.Title, req.Date, req.Time, req.Location, req.Type, req.Status, req.RegistrationDeadline, req.BannerImage} {
		if p != nil {
			*p = strings.TrimSpace(*p)
		}
	}
	if req.Status != nil {
		*req.Status = strings.ToLower(*req.Status)
	}
	if req.Description != nil {
		*req.Description = htmlsanitize.Sanitize(strings.TrimSpace(*req.Description))
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// validDate reports whether s is empty or a YYYY-MM-DD calendar date.
func validDate(s string) bool {
	if s == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// check runs the rules common to create and update. When creating, the
// required fields must be present.
func (req *eventRequest) check(creating bool) *inputval.Error {
	c := inputval.New()
	if creating {
		c.Required("title", str(req.Title)).
			Required("description", str(req.Description)).
			Required("date", str(req.Date)).
			Required("location", str(req.Location))
	} else {
		if req.Title != nil {
			c.Required("title", *req.Title)
		}
		if req.Date != nil {
			c.Required("date", *req.Date)
		}
		if req.Location != nil {
			c.Required("location", *req.Location)
		}
		c.Enum("status", req.Status, models.EventStatuses)
	}
	return c.
		OneOf("status", str(req.Status), models.EventStatuses).
		NonNegative("expectedAttendees", req.ExpectedAttendees).
		Check(validDate(str(req.Date)), "Invalid date.").
		Check(validDate(str(req.RegistrationDeadline)), "Invalid registrationDeadline.").
		Err()
}

func (req *eventRequest) model() models.Event {
	e := models.Event{
		Title:                str(req.Title),
		Description:          str(req.Description),
		Date:                 str(req.Date),
		Time:                 str(req.Time),
		Location:             str(req.Location),
		Type:                 str(req.Type),
		Status:               str(req.Status),
		RegistrationDeadline: str(req.RegistrationDeadline),
		BannerImage:          str(req.BannerImage),
		ExpectedAttendees:    req.ExpectedAttendees.Int(),
	}
	if req.IsRegistrationOpen != nil {
		e.IsRegistrationOpen = *req.IsRegistrationOpen
	}
	return e
}

func (req *eventRequest) update() eventstore.Update {
	upd := eventstore.Update{
		Title:                req.Title,
		Description:          req.Description,
		Date:                 req.Date,
		Time:                 req.Time,
		Location:             req.Location,
		Type:                 req.Type,
		Status:               req.Status,
		IsRegistrationOpen:   req.IsRegistrationOpen,
		RegistrationDeadline: req.RegistrationDeadline,
		BannerImage:          req.BannerImage,
	}
	if req.ExpectedAttendees.Valid {
		n := req.ExpectedAttendees.Int()
		upd.ExpectedAttendees = &n
	}
	return upd
}
