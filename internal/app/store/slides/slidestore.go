package slidestore

import (
	"context"
	"time"

	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("slides")}
}

// List returns slides in display order.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.Slide, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Slide{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a slide.
func (s *Store) Create(ctx context.Context, sl models.Slide) (models.Slide, error) {
	sl.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	sl.CreatedAt = now
	sl.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sl); err != nil {
		return models.Slide{}, err
	}
	return sl, nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	Title    *string
	Subtitle *string
	ImageURL *string
	LinkURL  *string
	Order    *int
	IsActive *bool
}

// Update applies upd and returns the slide after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Slide, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Subtitle != nil {
		set["subtitle"] = *upd.Subtitle
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.LinkURL != nil {
		set["link_url"] = *upd.LinkURL
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var sl models.Slide
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&sl); err != nil {
		return nil, err
	}
	return &sl, nil
}

// Delete removes a slide. Returns mongo.ErrNoDocuments if it did not exist.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
