package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/alumnihub/internal/app/system/normalize"
	"github.com/dalemusser/alumnihub/internal/app/system/paging"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrInvalidResetToken covers unknown, used and expired reset tokens alike.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	errBadRole           = errors.New(`role must be "super_admin"|"admin"|"moderator"|"alumni"`)
	errBadStatus         = errors.New(`status must be "active"|"pending"|"suspended"`)
)

func validRole(r string) bool {
	switch r {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleModerator, models.RoleAlumni:
		return true
	}
	return false
}

func validStatus(s string) bool {
	switch s {
	case models.StatusActive, models.StatusPending, models.StatusSuspended:
		return true
	}
	return false
}

// GetByID loads a user by ObjectID. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
// Role defaults to alumni and status to pending.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Status = normalize.Status(u.Status)
	if u.Role == "" {
		u.Role = models.RoleAlumni
	}
	if u.Status == "" {
		u.Status = models.StatusPending
	}

	if !validRole(u.Role) {
		return models.User{}, errBadRole
	}
	if !validStatus(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ProfileUpdate holds the self-editable profile fields. Email is not one of them.
type ProfileUpdate struct {
	FullName       string
	Batch          string
	PassingYear    int
	CollegeName    string
	UniversityName string
	Profession     string
	Phone          string
	Location       string
	Bio            string
	ProfilePicture string
	SocialLinks    models.SocialLinks
}

// UpdateProfile replaces the profile fields and returns the updated user.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	name := normalize.Name(upd.FullName)
	set := bson.M{
		"full_name":       name,
		"full_name_ci":    text.Fold(name),
		"batch":           upd.Batch,
		"passing_year":    upd.PassingYear,
		"college_name":    upd.CollegeName,
		"university_name": upd.UniversityName,
		"profession":      upd.Profession,
		"phone":           upd.Phone,
		"location":        upd.Location,
		"bio":             upd.Bio,
		"profile_picture": upd.ProfilePicture,
		"social_links":    upd.SocialLinks,
		"updated_at":      time.Now().UTC(),
	}
	return s.findAndSet(ctx, id, set, options.After)
}

// SetRoleStatus changes role and/or status (empty means unchanged) and
// returns the user as it was before the change.
func (s *Store) SetRoleStatus(ctx context.Context, id primitive.ObjectID, role, status string) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if role != "" {
		if !validRole(role) {
			return nil, errBadRole
		}
		set["role"] = role
	}
	if status != "" {
		if !validStatus(status) {
			return nil, errBadStatus
		}
		set["status"] = status
	}
	return s.findAndSet(ctx, id, set, options.Before)
}

// SetFeatured toggles directory featuring and returns the updated user.
func (s *Store) SetFeatured(ctx context.Context, id primitive.ObjectID, featured bool) (*models.User, error) {
	return s.findAndSet(ctx, id, bson.M{"is_featured": featured, "updated_at": time.Now().UTC()}, options.After)
}

func (s *Store) findAndSet(ctx context.Context, id primitive.ObjectID, set bson.M, rd options.ReturnDocument) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(rd)
	var u models.User
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetResetToken stores the digest of a password reset token.
func (s *Store) SetResetToken(ctx context.Context, id primitive.ObjectID, digest string, expires time.Time) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"password_reset_token":   digest,
		"password_reset_expires": expires.UTC(),
		"updated_at":             time.Now().UTC(),
	}})
	return err
}

// ResetPassword swaps in passwordHash for the account holding an unexpired
// token with the given digest and clears the token so it cannot be reused.
func (s *Store) ResetPassword(ctx context.Context, digest, passwordHash string) (*models.User, error) {
	if digest == "" {
		return nil, ErrInvalidResetToken
	}
	now := time.Now().UTC()
	filter := bson.M{
		"password_reset_token":   digest,
		"password_reset_expires": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": now},
		"$unset": bson.M{"password_reset_token": "", "password_reset_expires": ""},
	}
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, filter, update, options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrInvalidResetToken
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DirectoryFilter narrows the public alumni directory.
type DirectoryFilter struct {
	Batch    string
	Query    string // prefix of the folded full name
	Featured bool
	Page     paging.Page
}

// ListDirectory returns active users sorted by batch then name.
func (s *Store) ListDirectory(ctx context.Context, f DirectoryFilter) ([]models.User, error) {
	filter := bson.M{"status": models.StatusActive}
	if f.Batch != "" {
		filter["batch"] = f.Batch
	}
	if f.Featured {
		filter["is_featured"] = true
	}
	if f.Query != "" {
		filter["full_name_ci"] = bson.M{"$regex": "^" + regexp.QuoteMeta(text.Fold(f.Query))}
	}
	opts := f.Page.Apply(options.Find().SetSort(bson.D{{Key: "batch", Value: 1}, {Key: "full_name_ci", Value: 1}}))
	return s.find(ctx, filter, opts)
}

// ListAdmin returns users for the back office, newest first. Empty status
// or role means any.
func (s *Store) ListAdmin(ctx context.Context, status, role string, page paging.Page) ([]models.User, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	if role != "" {
		filter["role"] = role
	}
	opts := page.Apply(options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	return s.find(ctx, filter, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.User, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.User{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByStatus returns the number of users in each status. Every status
// is present in the result, possibly with 0.
func (s *Store) CountByStatus(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64, len(models.Statuses))
	for _, st := range models.Statuses {
		out[st] = 0
	}

	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			N      int64  `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		out[row.Status] = row.N
	}
	return out, cur.Err()
}

// PromoteSuperAdmin makes the account with email an active super admin.
// It reports false when no such account exists.
func (s *Store) PromoteSuperAdmin(ctx context.Context, email string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{
			"role":       models.RoleSuperAdmin,
			"status":     models.StatusActive,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// NamesByIDs maps each found id to the user's full name. Unknown ids are
// absent from the result.
func (s *Store) NamesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	out := make(map[primitive.ObjectID]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1, "full_name": 1})
	users, err := s.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u.FullName
	}
	return out, nil
}

// ClearExpiredResetTokens removes reset tokens whose expiry has passed and
// returns how many accounts were touched.
func (s *Store) ClearExpiredResetTokens(ctx context.Context) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"password_reset_expires": bson.M{"$lte": time.Now().UTC()}},
		bson.M{"$unset": bson.M{"password_reset_token": "", "password_reset_expires": ""}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
