package memorystore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/alumnihub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Liker identifies who is liking: a signed-in user or a browser guest ID.
type Liker struct {
	UserID  *primitive.ObjectID
	GuestID string
}

// Key is the value stored in liker_key.
func (l Liker) Key() string {
	if l.UserID != nil {
		return "user-" + l.UserID.Hex()
	}
	return "guest-" + l.GuestID
}

// ToggleLike flips liker's like on the memory and returns the new state
// and like count. A concurrent duplicate like is reported as liked without
// counting twice.
func (s *Store) ToggleLike(ctx context.Context, memoryID primitive.ObjectID, liker Liker) (liked bool, likes int, err error) {
	key := liker.Key()

	res, err := s.likes.DeleteOne(ctx, bson.M{"memory_id": memoryID, "liker_key": key})
	if err != nil {
		return false, 0, err
	}
	if res.DeletedCount > 0 {
		likes, err := s.bumpLikes(ctx, memoryID, -1)
		return false, likes, err
	}

	like := models.MemoryLike{
		ID:        primitive.NewObjectID(),
		MemoryID:  memoryID,
		LikerKey:  key,
		UserID:    liker.UserID,
		CreatedAt: time.Now().UTC(),
	}
	if liker.UserID == nil {
		like.GuestID = liker.GuestID
	}
	if _, err := s.likes.InsertOne(ctx, like); err != nil {
		if wafflemongo.IsDup(err) {
			m, gerr := s.GetByID(ctx, memoryID)
			if gerr != nil {
				return true, 0, gerr
			}
			return true, m.Likes, nil
		}
		return false, 0, err
	}
	likes, err = s.bumpLikes(ctx, memoryID, 1)
	return true, likes, err
}

// bumpLikes adds delta to the like counter, never letting it drop below 0.
func (s *Store) bumpLikes(ctx context.Context, memoryID primitive.ObjectID, delta int) (int, error) {
	filter := bson.M{"_id": memoryID}
	if delta < 0 {
		filter["likes"] = bson.M{"$gt": 0}
	}
	var m models.Memory
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, filter, bson.M{"$inc": bson.M{"likes": delta}}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) && delta < 0 {
		// already at zero
		cur, gerr := s.GetByID(ctx, memoryID)
		if gerr != nil {
			return 0, gerr
		}
		return cur.Likes, nil
	}
	if err != nil {
		return 0, err
	}
	return m.Likes, nil
}

// HasLiked reports whether liker currently likes the memory.
func (s *Store) HasLiked(ctx context.Context, memoryID primitive.ObjectID, liker Liker) (bool, error) {
	err := s.likes.FindOne(ctx, bson.M{"memory_id": memoryID, "liker_key": liker.Key()}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

// AddComment appends a comment and bumps the memory's comment counter.
func (s *Store) AddComment(ctx context.Context, c models.MemoryComment) (models.MemoryComment, error) {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	if _, err := s.comments.InsertOne(ctx, c); err != nil {
		return models.MemoryComment{}, err
	}
	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": c.MemoryID}, bson.M{"$inc": bson.M{"comments": 1}}); err != nil {
		return models.MemoryComment{}, err
	}
	return c, nil
}

// ListComments returns a memory's comments oldest first.
func (s *Store) ListComments(ctx context.Context, memoryID primitive.ObjectID) ([]models.MemoryComment, error) {
	cur, err := s.comments.Find(ctx, bson.M{"memory_id": memoryID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.MemoryComment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
