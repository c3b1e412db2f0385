// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles. Any of the first three passes the admin gate.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleModerator  = "moderator"
	RoleAlumni     = "alumni"
)

// User account statuses. Only active accounts may sign in or act.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusSuspended = "suspended"
)

// Roles lists every assignable role.
var Roles = []string{RoleSuperAdmin, RoleAdmin, RoleModerator, RoleAlumni}

// Statuses lists every account status.
var Statuses = []string{StatusActive, StatusPending, StatusSuspended}

// SocialLinks holds optional profile links.
type SocialLinks struct {
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty" json:"linkedin,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
}

// User is an alumni account, including admins and moderators.
//
// NOTE:
//   - Email is stored lowercased and is unique (uniq_users_email).
//   - PasswordResetToken holds the sha256 of the token mailed to the user,
//     never the token itself.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName       string             `bson:"full_name" json:"fullName"`
	FullNameCI     string             `bson:"full_name_ci" json:"-"` // folded for search
	Email          string             `bson:"email" json:"email"`
	PasswordHash   string             `bson:"password_hash,omitempty" json:"-"`
	Batch          string             `bson:"batch,omitempty" json:"batch,omitempty"`
	PassingYear    int                `bson:"passing_year,omitempty" json:"passingYear,omitempty"`
	CollegeName    string             `bson:"college_name,omitempty" json:"collegeName,omitempty"`
	UniversityName string             `bson:"university_name,omitempty" json:"universityName,omitempty"`
	Profession     string             `bson:"profession,omitempty" json:"profession,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Location       string             `bson:"location,omitempty" json:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture string             `bson:"profile_picture,omitempty" json:"profilePicture,omitempty"`
	SocialLinks    SocialLinks        `bson:"social_links" json:"socialLinks"`
	Role           string             `bson:"role" json:"role"`
	Status         string             `bson:"status" json:"status"`
	IsFeatured     bool               `bson:"is_featured" json:"isFeatured"`

	PasswordResetToken   string     `bson:"password_reset_token,omitempty" json:"-"`
	PasswordResetExpires *time.Time `bson:"password_reset_expires,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the account may sign in.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// UserSummary is the short form returned by register/login.
type UserSummary struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// Summary returns the short form of u.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID.Hex(),
		FullName: u.FullName,
		Email:    u.Email,
		Role:     u.Role,
		Status:   u.Status,
	}
}

// PublicProfile is what the alumni directory exposes. No contact details.
type PublicProfile struct {
	ID             string      `json:"id"`
	FullName       string      `json:"fullName"`
	Batch          string      `json:"batch,omitempty"`
	PassingYear    int         `json:"passingYear,omitempty"`
	CollegeName    string      `json:"collegeName,omitempty"`
	UniversityName string      `json:"universityName,omitempty"`
	Profession     string      `json:"profession,omitempty"`
	Location       string      `json:"location,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	ProfilePicture string      `json:"profilePicture,omitempty"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	IsFeatured     bool        `json:"isFeatured"`
}

// Public returns the directory projection of u.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:             u.ID.Hex(),
		FullName:       u.FullName,
		Batch:          u.Batch,
		PassingYear:    u.PassingYear,
		CollegeName:    u.CollegeName,
		UniversityName: u.UniversityName,
		Profession:     u.Profession,
		Location:       u.Location,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		SocialLinks:    u.SocialLinks,
		IsFeatured:     u.IsFeatured,
	}
}
