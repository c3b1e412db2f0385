package eventstore

import (
	"context"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c    *mongo.Collection
	regs *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:    db.Collection("events"),
		regs: db.Collection("event_registrations"),
	}
}

// Filter narrows an event listing.
type Filter struct {
	Status        string // exact status; empty means any
	IncludeDrafts bool   // ignored when Status is set
	Page          paging.Page
}

// List returns events by date, soonest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Event, error) {
	filter := bson.M{}
	switch {
	case f.Status != "":
		filter["status"] = f.Status
	case !f.IncludeDrafts:
		filter["status"] = bson.M{"$ne": models.EventDraft}
	}
	opts := f.Page.Apply(options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "created_at", Value: -1}}))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Event{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads an event. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var e models.Event
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByIDs returns the events with the given IDs keyed by ID.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Event, error) {
	out := make(map[primitive.ObjectID]models.Event, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var e models.Event
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		out[e.ID] = e
	}
	return out, cur.Err()
}

// Create inserts an event. RegisteredAttendees always starts at zero.
func (s *Store) Create(ctx context.Context, e models.Event) (models.Event, error) {
	e.ID = primitive.NewObjectID()
	e.RegisteredAttendees = 0
	if e.Status == "" {
		e.Status = models.EventUpcoming
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Event{}, err
	}
	return e, nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	Title                *string
	Description          *string
	Date                 *string
	Time                 *string
	Location             *string
	Type                 *string
	ExpectedAttendees    *int
	Status               *string
	IsRegistrationOpen   *bool
	RegistrationDeadline *string
	BannerImage          *string
}

// Update applies upd and returns the event after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Event, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	str("title", upd.Title)
	str("description", upd.Description)
	str("date", upd.Date)
	str("time", upd.Time)
	str("location", upd.Location)
	str("type", upd.Type)
	str("status", upd.Status)
	str("registration_deadline", upd.RegistrationDeadline)
	str("banner_image", upd.BannerImage)
	if upd.ExpectedAttendees != nil {
		set["expected_attendees"] = *upd.ExpectedAttendees
	}
	if upd.IsRegistrationOpen != nil {
		set["is_registration_open"] = *upd.IsRegistrationOpen
	}

	var e models.Event
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Delete removes an event together with its registrations.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	_, err = s.regs.DeleteMany(ctx, bson.M{"event_id": id})
	return err
}

// Count returns the number of events, drafts included.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
