// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GalleryItem is a photo in the public gallery.
type GalleryItem struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	ImageURL    string             `bson:"image_url" json:"imageUrl"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Order       int                `bson:"order" json:"order"`
	IsActive    bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Slide is one home-page slideshow entry, shown in Order.
type Slide struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Subtitle string             `bson:"subtitle,omitempty" json:"subtitle,omitempty"`
	ImageURL string             `bson:"image_url" json:"imageUrl"`
	LinkURL  string             `bson:"link_url,omitempty" json:"linkUrl,omitempty"`
	Order    int                `bson:"order" json:"order"`
	IsActive bool               `bson:"is_active" json:"isActive"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// Post is an announcement or news article.
type Post struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	Content     string              `bson:"content" json:"content"` // sanitized HTML
	Excerpt     string              `bson:"excerpt,omitempty" json:"excerpt,omitempty"`
	CoverImage  string              `bson:"cover_image,omitempty" json:"coverImage,omitempty"`
	Category    string              `bson:"category,omitempty" json:"category,omitempty"`
	IsPublished bool                `bson:"is_published" json:"isPublished"`
	PublishedAt *time.Time          `bson:"published_at,omitempty" json:"publishedAt,omitempty"`
	Author      string              `bson:"author,omitempty" json:"author,omitempty"`
	AuthorID    *primitive.ObjectID `bson:"author_id,omitempty" json:"authorId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
