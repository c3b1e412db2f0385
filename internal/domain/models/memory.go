// internal/domain/models/memory.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxMemoryImages caps Memory.Images.
const MaxMemoryImages = 10

// Memory is a user-submitted recollection.
//
// Likes and Comments are denormalized counters kept in lockstep with the
// memory_likes and memory_comments collections. They can drift under
// partial failure and are not authoritative.
type Memory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        string             `bson:"date,omitempty" json:"date,omitempty"`
	Batch       string             `bson:"batch,omitempty" json:"batch,omitempty"`
	Author      string             `bson:"author" json:"author"`
	AuthorID    primitive.ObjectID `bson:"author_id" json:"authorId"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Images      []string           `bson:"images" json:"images"`
	Likes       int                `bson:"likes" json:"likes"`
	Comments    int                `bson:"comments" json:"comments"`
	Color       string             `bson:"color,omitempty" json:"color,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// MemoryLike records one viewer's like. (memory_id, liker_key) is unique.
type MemoryLike struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemoryID  primitive.ObjectID  `bson:"memory_id" json:"memoryId"`
	LikerKey  string              `bson:"liker_key" json:"likerKey"` // user-{id} | guest-{id}
	UserID    *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	GuestID   string              `bson:"guest_id,omitempty" json:"guestId,omitempty"`
	CreatedAt time.Time           `bson:"created_at" json:"createdAt"`
}

// MemoryComment is an append-only comment on a Memory.
type MemoryComment struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	MemoryID   primitive.ObjectID  `bson:"memory_id" json:"memoryId"`
	Text       string              `bson:"text" json:"text"`
	AuthorName string              `bson:"author_name" json:"authorName"`
	UserID     *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"`
	CreatedAt  time.Time           `bson:"created_at" json:"createdAt"`
}
