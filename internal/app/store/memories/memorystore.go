package memorystore

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
	c        *mongo.Collection
	likes    *mongo.Collection
	comments *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("memories"),
		likes:    db.Collection("memory_likes"),
		comments: db.Collection("memory_comments"),
	}
}

// List returns memories newest first, optionally for one batch.
func (s *Store) List(ctx context.Context, batch string, page paging.Page) ([]models.Memory, error) {
	filter := bson.M{}
	if batch != "" {
		filter["batch"] = batch
	}
	opts := page.Apply(options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Memory{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a memory. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Memory, error) {
	var m models.Memory
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a memory with zeroed counters.
func (s *Store) Create(ctx context.Context, m models.Memory) (models.Memory, error) {
	m.ID = primitive.NewObjectID()
	m.Likes = 0
	m.Comments = 0
	if m.Images == nil {
		m.Images = []string{}
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Memory{}, err
	}
	return m, nil
}

// Update is a partial update of the author-editable fields.
type Update struct {
	Title       *string
	Description *string
	Date        *string
	Batch       *string
	ImageURL    *string
	Images      []string // nil means unchanged
	Color       *string
}

// Update applies upd and returns the memory after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Memory, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	str("title", upd.Title)
	str("description", upd.Description)
	str("date", upd.Date)
	str("batch", upd.Batch)
	str("image_url", upd.ImageURL)
	str("color", upd.Color)
	if upd.Images != nil {
		set["images"] = upd.Images
	}

	var m models.Memory
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Delete removes a memory with its likes and comments.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	if _, err := s.likes.DeleteMany(ctx, bson.M{"memory_id": id}); err != nil {
		return err
	}
	_, err = s.comments.DeleteMany(ctx, bson.M{"memory_id": id})
	return err
}
