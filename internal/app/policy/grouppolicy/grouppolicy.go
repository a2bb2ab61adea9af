// internal/app/policy/grouppolicy/grouppolicy.go
package grouppolicy

import (
	"net/http"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsMember reports whether the student belongs to the group.
func IsMember(g *models.Group, studentID primitive.ObjectID) bool {
	for _, id := range g.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// CanView reports whether the request user may read the group:
//   - Admins always can
//   - The supervising faculty member can
//   - Member students can
func CanView(r *http.Request, g *models.Group) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	switch role {
	case "admin":
		return true
	case "supervisor":
		return g.SupervisorID == uid
	case "student":
		return IsMember(g, uid)
	}
	return false
}

// CanManage reports whether the request user may mutate the group
// (marks, doc reviews): only the supervising faculty member or an admin
// with write permission.
func CanManage(r *http.Request, g *models.Group) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == "admin" {
		return authz.HasWritePermission(r)
	}
	return role == "supervisor" && g.SupervisorID == uid
}

// CanSubmit reports whether the request user may upload a deliverable
// for the group: member students only.
func CanSubmit(r *http.Request, g *models.Group) bool {
	role, _, uid, ok := authz.UserCtx(r)
	if !ok || role != "student" {
		return false
	}
	return IsMember(g, uid)
}
