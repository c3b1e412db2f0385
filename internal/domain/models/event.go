// internal/domain/models/event.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event statuses.
const (
	EventUpcoming  = "upcoming"
	EventDraft     = "draft"
	EventCompleted = "completed"
)

// EventStatuses lists every event status.
var EventStatuses = []string{EventUpcoming, EventDraft, EventCompleted}

// Event is a schedulable occurrence alumni can register for.
//
// RegisteredAttendees is a denormalized count bumped on each successful
// registration. It is never decremented.
type Event struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title                string             `bson:"title" json:"title"`
	Description          string             `bson:"description" json:"description"`
	Date                 string             `bson:"date" json:"date"` // YYYY-MM-DD
	Time                 string             `bson:"time,omitempty" json:"time,omitempty"`
	Location             string             `bson:"location" json:"location"`
	Type                 string             `bson:"type,omitempty" json:"type,omitempty"`
	ExpectedAttendees    int                `bson:"expected_attendees" json:"expectedAttendees"`
	Status               string             `bson:"status" json:"status"`
	IsRegistrationOpen   bool               `bson:"is_registration_open" json:"isRegistrationOpen"`
	RegistrationDeadline string             `bson:"registration_deadline,omitempty" json:"registrationDeadline,omitempty"` // YYYY-MM-DD
	RegisteredAttendees  int                `bson:"registered_attendees" json:"registeredAttendees"`
	BannerImage          string             `bson:"banner_image,omitempty" json:"bannerImage,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
