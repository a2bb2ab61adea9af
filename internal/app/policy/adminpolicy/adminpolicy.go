// Package adminpolicy decides what an authenticated admin may do.
//
// Authorization rules:
//   - Read-only oversight (listings, progress views) needs only the admin role
//   - Mutations (user management, deadlines, vivas, extensions) need the
//     write permission or the superadmin flag
//   - Managing other admin accounts is superadmin-only
//
// The route middleware auth.RequireRole("admin") handles basic role
// enforcement; these checks layer capability on top.
package adminpolicy

import (
	"net/http"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

// CanWrite reports whether the request user may perform admin mutations.
func CanWrite(r *http.Request) bool {
	return authz.IsAdmin(r) && authz.HasWritePermission(r)
}

// CanManageAdmins reports whether the request user may create, update, or
// delete admin accounts.
func CanManageAdmins(r *http.Request) bool {
	return authz.IsSuperAdmin(r)
}

// RequireWrite is route middleware for mutating admin endpoints. It
// assumes RequireRole("admin") already ran.
func RequireWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CanWrite(r) {
			httpjson.Error(w, http.StatusForbidden, "write permission required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSuperAdmin is route middleware for admin-account management
// endpoints.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !CanManageAdmins(r) {
			httpjson.Error(w, http.StatusForbidden, "superadmin required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
