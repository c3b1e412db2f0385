// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/dalemusser/alumnihub/internal/app/system/auth"
	"github.com/dalemusser/alumnihub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminRoles may use the back office.
var AdminRoles = []string{models.RoleSuperAdmin, models.RoleAdmin, models.RoleModerator}

// FinanceRoles may manage donations, campaigns and statistics.
var FinanceRoles = []string{models.RoleSuperAdmin, models.RoleAdmin}

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a found flag.
// If no active user is present or the ID is malformed it returns
// "visitor", "", NilObjectID, false.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// corrupted session; fail closed
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdminRole reports whether role belongs to the back-office set.
func IsAdminRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case models.RoleSuperAdmin, models.RoleAdmin, models.RoleModerator:
		return true
	}
	return false
}

// HasAnyRole reports whether a signed-in user holds one of roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == want {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the current user holds an admin-set role.
func IsAdmin(r *http.Request) bool { return HasAnyRole(r, AdminRoles...) }

// IsSuperAdmin reports whether the current user is a super admin.
func IsSuperAdmin(r *http.Request) bool { return HasAnyRole(r, models.RoleSuperAdmin) }

// CanGrantRole reports whether actorRole may assign target to someone.
// Only a super admin can hand out super_admin.
func CanGrantRole(actorRole, target string) bool {
	if !IsAdminRole(actorRole) {
		return false
	}
	if target == models.RoleSuperAdmin {
		return strings.ToLower(actorRole) == models.RoleSuperAdmin
	}
	return true
}

// CanModify reports whether the current user may edit or delete a record
// owned by ownerID: the owner or any admin-set role.
func CanModify(r *http.Request, ownerID primitive.ObjectID) bool {
	role, _, uid, ok := UserCtx(r)
	if !ok {
		return false
	}
	return IsAdminRole(role) || (!ownerID.IsZero() && uid == ownerID)
}
