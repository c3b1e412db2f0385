package gallerystore

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
	return &Store{c: db.Collection("gallery_items")}
}

// List returns items by display order. Empty category means any.
func (s *Store) List(ctx context.Context, activeOnly bool, category string) ([]models.GalleryItem, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	if category != "" {
		filter["category"] = category
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.GalleryItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a gallery item.
func (s *Store) Create(ctx context.Context, g models.GalleryItem) (models.GalleryItem, error) {
	g.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.GalleryItem{}, err
	}
	return g, nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	Title       *string
	ImageURL    *string
	Description *string
	Category    *string
	Order       *int
	IsActive    *bool
}

// Update applies upd and returns the item after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.GalleryItem, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.ImageURL != nil {
		set["image_url"] = *upd.ImageURL
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Order != nil {
		set["order"] = *upd.Order
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var g models.GalleryItem
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes an item. Returns mongo.ErrNoDocuments if it did not exist.
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
