package eventstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/normalize"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrRegistrationClosed = errors.New("registration is not open for this event")
	ErrDeadlinePassed     = errors.New("registration deadline has passed")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
)

// CheckRegistrationOpen reports whether e accepts registrations at now.
// The deadline is a local calendar day and stays open until 23:59:59 of
// that day. An unparseable deadline is treated as absent.
func CheckRegistrationOpen(e *models.Event, now time.Time) error {
	if !e.IsRegistrationOpen || e.Status != models.EventUpcoming {
		return ErrRegistrationClosed
	}
	if e.RegistrationDeadline == "" {
		return nil
	}
	end, err := time.ParseInLocation("2006-01-02T15:04:05", e.RegistrationDeadline+"T23:59:59", time.Local)
	if err != nil {
		return nil
	}
	if end.Before(now) {
		return ErrDeadlinePassed
	}
	return nil
}

// Register records reg against e and bumps the attendee counter. The
// caller checks CheckRegistrationOpen first.
func (s *Store) Register(ctx context.Context, e *models.Event, reg models.EventRegistration) (models.EventRegistration, error) {
	reg.ID = primitive.NewObjectID()
	reg.EventID = e.ID
	reg.Email = normalize.Email(reg.Email)
	reg.Status = models.RegistrationRegistered
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now

	err := s.regs.FindOne(ctx, bson.M{"event_id": e.ID, "email": reg.Email}).Err()
	switch {
	case err == nil:
		return models.EventRegistration{}, ErrAlreadyRegistered
	case !errors.Is(err, mongo.ErrNoDocuments):
		return models.EventRegistration{}, err
	}

	if _, err := s.regs.InsertOne(ctx, reg); err != nil {
		if wafflemongo.IsDup(err) {
			return models.EventRegistration{}, ErrAlreadyRegistered
		}
		return models.EventRegistration{}, err
	}

	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": e.ID}, bson.M{
		"$inc": bson.M{"registered_attendees": 1},
		"$set": bson.M{"updated_at": now},
	}); err != nil {
		return models.EventRegistration{}, err
	}
	return reg, nil
}

// ListRegistrations returns an event's registrations in sign-up order.
func (s *Store) ListRegistrations(ctx context.Context, eventID primitive.ObjectID) ([]models.EventRegistration, error) {
	return s.findRegs(ctx, bson.M{"event_id": eventID}, 1)
}

// ListUserRegistrations returns registrations made by the user or under
// their email, newest first.
func (s *Store) ListUserRegistrations(ctx context.Context, userID primitive.ObjectID, email string) ([]models.EventRegistration, error) {
	filter := bson.M{"$or": []bson.M{
		{"user_id": userID},
		{"email": normalize.Email(email)},
	}}
	return s.findRegs(ctx, filter, -1)
}

func (s *Store) findRegs(ctx context.Context, filter bson.M, dir int) ([]models.EventRegistration, error) {
	cur, err := s.regs.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: dir}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.EventRegistration{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
