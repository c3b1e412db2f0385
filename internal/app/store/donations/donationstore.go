package donationstore

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
	return &Store{c: db.Collection("donations")}
}

// Create inserts a donation. Status must already be set by the caller.
func (s *Store) Create(ctx context.Context, d models.Donation) (models.Donation, error) {
	d.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Donation{}, err
	}
	return d, nil
}

// GetByID loads a donation. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Filter narrows a donation listing. Empty fields mean any.
type Filter struct {
	Status   string
	Campaign string
	UserID   *primitive.ObjectID
	Page     paging.Page
}

// List returns donations newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Donation, error) {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Campaign != "" {
		filter["campaign"] = f.Campaign
	}
	if f.UserID != nil {
		filter["user_id"] = *f.UserID
	}

	opts := f.Page.Apply(options.Find().SetSort(bson.D{
		{Key: "donation_date", Value: -1},
		{Key: "created_at", Value: -1},
	}))
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Donation{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	DonorName     *string
	Campaign      *string
	Amount        *float64
	Method        *string
	DonationDate  *string
	Note          *string
	SentToLabel   *string
	SentToDetails *string
	FromAccount   *string
	Status        *string
}

// Update applies upd and returns the donation before and after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (before, after *models.Donation, err error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	str := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	str("donor_name", upd.DonorName)
	str("campaign", upd.Campaign)
	str("method", upd.Method)
	str("donation_date", upd.DonationDate)
	str("note", upd.Note)
	str("sent_to_label", upd.SentToLabel)
	str("sent_to_details", upd.SentToDetails)
	str("from_account", upd.FromAccount)
	str("status", upd.Status)
	if upd.Amount != nil {
		set["amount"] = *upd.Amount
	}

	var prev models.Donation
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&prev); err != nil {
		return nil, nil, err
	}
	next, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return &prev, next, nil
}

// Delete removes a donation and returns what was removed.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.Donation, error) {
	var d models.Donation
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Totals summarises donations for the admin stats page.
type Totals struct {
	ReceivedAmount float64
	ReceivedCount  int64
	PendingCount   int64
}

// FetchTotals sums received donations and counts pending ones.
func (s *Store) FetchTotals(ctx context.Context) (Totals, error) {
	var out Totals

	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.DonationReceived}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	})
	if err != nil {
		return out, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		var row struct {
			Total float64 `bson:"total"`
			N     int64   `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return out, err
		}
		out.ReceivedAmount, out.ReceivedCount = row.Total, row.N
	}
	if err := cur.Err(); err != nil {
		return out, err
	}

	out.PendingCount, err = s.c.CountDocuments(ctx, bson.M{"status": models.DonationPending})
	return out, err
}
