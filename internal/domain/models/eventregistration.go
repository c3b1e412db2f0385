// internal/domain/models/eventregistration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration statuses.
const (
	RegistrationRegistered = "registered"
	RegistrationCancelled  = "cancelled"
)

// EventRegistration joins a user (or anonymous submitter) to an Event.
// (event_id, email) is unique (uniq_eventreg_event_email).
type EventRegistration struct {
	ID       primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	EventID  primitive.ObjectID  `bson:"event_id" json:"eventId"`
	UserID   *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	FullName string              `bson:"full_name" json:"fullName"`
	Email    string              `bson:"email" json:"email"` // lowercased
	Phone    string              `bson:"phone,omitempty" json:"phone,omitempty"`
	Batch    string              `bson:"batch,omitempty" json:"batch,omitempty"`
	Status   string              `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
