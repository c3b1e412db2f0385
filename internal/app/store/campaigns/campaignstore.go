package campaignstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/alumnihub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateTitle is returned when another campaign already uses the title.
var ErrDuplicateTitle = errors.New("a campaign with this title already exists")

type Store struct {
	c         *mongo.Collection
	donations *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:         db.Collection("donation_campaigns"),
		donations: db.Collection("donations"),
	}
}

// List returns campaigns newest first, optionally only active ones.
func (s *Store) List(ctx context.Context, activeOnly bool) ([]models.DonationCampaign, error) {
	filter := bson.M{}
	if activeOnly {
		filter["is_active"] = true
	}
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.DonationCampaign{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a campaign. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.DonationCampaign, error) {
	var c models.DonationCampaign
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a campaign and derives the legacy payment_account string.
// CollectedAmount is stored as given; callers follow up with RecalcCollected
// so the total reflects donations already filed under the title.
func (s *Store) Create(ctx context.Context, c models.DonationCampaign) (models.DonationCampaign, error) {
	c.ID = primitive.NewObjectID()
	c.Title = strings.TrimSpace(c.Title)
	if c.PaymentAccounts == nil {
		c.PaymentAccounts = []models.PaymentAccount{}
	}
	c.PaymentAccount = models.LegacyPaymentAccount(c.PaymentAccounts)
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, c); err != nil {
		if wafflemongo.IsDup(err) {
			return models.DonationCampaign{}, ErrDuplicateTitle
		}
		return models.DonationCampaign{}, err
	}
	return c, nil
}

// Update is a partial update; nil fields are left alone.
type Update struct {
	Title           *string
	Description     *string
	TargetAmount    *float64
	Deadline        *string
	BannerImage     *string
	PaymentAccounts []models.PaymentAccount // nil means unchanged
	IsActive        *bool
}

// Update applies upd and returns the campaign after the change.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd Update) (*models.DonationCampaign, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Title != nil {
		set["title"] = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.TargetAmount != nil {
		set["target_amount"] = *upd.TargetAmount
	}
	if upd.Deadline != nil {
		set["deadline"] = *upd.Deadline
	}
	if upd.BannerImage != nil {
		set["banner_image"] = *upd.BannerImage
	}
	if upd.PaymentAccounts != nil {
		set["payment_accounts"] = upd.PaymentAccounts
		set["payment_account"] = models.LegacyPaymentAccount(upd.PaymentAccounts)
	}
	if upd.IsActive != nil {
		set["is_active"] = *upd.IsActive
	}

	var c models.DonationCampaign
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&c)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a campaign and returns what was removed. Donations that
// name it are kept.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (*models.DonationCampaign, error) {
	var c models.DonationCampaign
	if err := s.c.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// RecalcCollected sets collected_amount on the campaign titled title to the
// sum of its received donations. A title no campaign uses is ignored.
func (s *Store) RecalcCollected(ctx context.Context, title string) error {
	if title == "" {
		return nil
	}
	n, err := s.c.CountDocuments(ctx, bson.M{"title": title}, options.Count().SetLimit(1))
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	total, err := s.sumReceived(ctx, title)
	if err != nil {
		return err
	}
	_, err = s.c.UpdateOne(ctx, bson.M{"title": title}, bson.M{"$set": bson.M{
		"collected_amount": total,
		"updated_at":       time.Now().UTC(),
	}})
	return err
}

func (s *Store) sumReceived(ctx context.Context, title string) (float64, error) {
	cur, err := s.donations.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "campaign", Value: title},
			{Key: "status", Value: models.DonationReceived},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	})
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var row struct {
		Total float64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
	}
	return row.Total, cur.Err()
}

// RecalcAll recomputes every campaign and returns how many were visited.
func (s *Store) RecalcAll(ctx context.Context) (int, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"title": 1}))
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var titles []string
	for cur.Next(ctx) {
		var row struct {
			Title string `bson:"title"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, err
		}
		titles = append(titles, row.Title)
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}

	for i, t := range titles {
		if err := s.RecalcCollected(ctx, t); err != nil {
			return i, err
		}
	}
	return len(titles), nil
}
