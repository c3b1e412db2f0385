package poststore

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
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("posts")}
}

// Filter narrows a post listing.
type Filter struct {
	PublishedOnly bool
	Category      string
	Page          paging.Page
}

// List returns posts, most recently published first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Post, error) {
	filter := bson.M{}
	if f.PublishedOnly {
		filter["is_published"] = true
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	opts := f.Page.Apply(options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}))

	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Post{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a post. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a post, stamping published_at when it goes out published.
func (s *Store) Create(ctx context.Context, p models.Post) (models.Post, error) {
	p.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.IsPublished && p.PublishedAt == nil {
		p.PublishedAt = &now
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	Title       *string
	Content     *string
	Excerpt     *string
	CoverImage  *string
	Category    *string
	IsPublished *bool
}

// Update applies upd and returns the post after the change. The first
// publish stamps published_at; unpublishing keeps it.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.Post, error) {
	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Excerpt != nil {
		set["excerpt"] = *upd.Excerpt
	}
	if upd.CoverImage != nil {
		set["cover_image"] = *upd.CoverImage
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.IsPublished != nil {
		set["is_published"] = *upd.IsPublished
	}

	var p models.Post
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p); err != nil {
		return nil, err
	}

	if p.IsPublished && p.PublishedAt == nil {
		if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "published_at": nil}, bson.M{"$set": bson.M{"published_at": now}}); err != nil {
			return nil, err
		}
		p.PublishedAt = &now
	}
	return &p, nil
}

// Delete removes a post. Returns mongo.ErrNoDocuments if it did not exist.
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
