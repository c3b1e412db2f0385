package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/authutil"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FixturePassword is the password of every user created by Fixtures.
const FixturePassword = "secret123"

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("insert into %s: %v", coll, err)
	}
}

// CreateUser inserts a user with FixturePassword.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role, status string) models.User {
	f.t.Helper()

	hash, err := authutil.HashPassword(FixturePassword)
	if err != nil {
		f.t.Fatalf("hash password: %v", err)
	}
	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     fullName,
		FullNameCI:   text.Fold(fullName),
		Email:        email,
		PasswordHash: hash,
		Batch:        "2010",
		PassingYear:  2010,
		CollegeName:  "Test College",
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "users", u)
	return u
}

// CreateActiveAlumni inserts an active alumni user.
func (f *Fixtures) CreateActiveAlumni(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAlumni, models.StatusActive)
}

// CreateAdmin inserts an active admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAdmin, models.StatusActive)
}

// CreateEvent inserts an event. deadline may be empty.
func (f *Fixtures) CreateEvent(ctx context.Context, title, status string, open bool, deadline string) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Event{
		ID:                   primitive.NewObjectID(),
		Title:                title,
		Description:          "Test event",
		Date:                 now.AddDate(0, 1, 0).Format("2006-01-02"),
		Location:             "School Hall",
		Status:               status,
		IsRegistrationOpen:   open,
		RegistrationDeadline: deadline,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	f.insert(ctx, "events", e)
	return e
}

// CreateCampaign inserts an active campaign with a zero collected amount.
func (f *Fixtures) CreateCampaign(ctx context.Context, title string, target float64) models.DonationCampaign {
	f.t.Helper()

	now := time.Now().UTC()
	c := models.DonationCampaign{
		ID:              primitive.NewObjectID(),
		Title:           title,
		TargetAmount:    target,
		PaymentAccounts: []models.PaymentAccount{},
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	f.insert(ctx, "donation_campaigns", c)
	return c
}

// CreateDonation inserts a donation without touching any campaign total.
func (f *Fixtures) CreateDonation(ctx context.Context, donor, campaign string, amount float64, status string) models.Donation {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Donation{
		ID:           primitive.NewObjectID(),
		DonorName:    donor,
		Campaign:     campaign,
		Amount:       amount,
		Method:       "Cash",
		DonationDate: now.Format("2006-01-02"),
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	f.insert(ctx, "donations", d)
	return d
}

// CreateMemory inserts a memory authored by author.
func (f *Fixtures) CreateMemory(ctx context.Context, title string, author models.User) models.Memory {
	f.t.Helper()

	now := time.Now().UTC()
	m := models.Memory{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: "Test memory",
		Author:      author.FullName,
		AuthorID:    author.ID,
		Images:      []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.insert(ctx, "memories", m)
	return m
}
