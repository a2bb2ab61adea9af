// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false, so callers can trust that
// ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in token - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsStudent reports whether the current request's user is a student.
func IsStudent(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleStudent
}

// IsSupervisor reports whether the current request's user is a supervisor.
func IsSupervisor(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleSupervisor
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == auth.RoleAdmin
}

// IsSuperAdmin reports whether the current request's user is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	return ok && strings.ToLower(user.Role) == auth.RoleAdmin && user.SuperAdmin
}

// HasWritePermission reports whether the current request's user is an admin
// allowed to mutate records. Superadmins always can; plain admins only with
// the write_permission flag.
func HasWritePermission(r *http.Request) bool {
	user, ok := auth.CurrentUser(r)
	if !ok || strings.ToLower(user.Role) != auth.RoleAdmin {
		return false
	}
	return user.SuperAdmin || user.WritePermission
}

// HasAnyRole reports whether the current request's user has any of the given
// roles. Returns false if no user is present.
func HasAnyRole(r *http.Request, roles ...string) bool {
	cur, _, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if cur == strings.ToLower(strings.TrimSpace(want)) {
			return true
		}
	}
	return false
}

// Role returns the current user's role (lowercased) and whether a user is present.
func Role(r *http.Request) (string, bool) {
	role, _, _, ok := UserCtx(r)
	return role, ok
}
