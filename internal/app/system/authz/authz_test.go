package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	role, name, uid, ok := authz.UserCtx(r)
	if ok {
		t.Error("expected ok=false for anonymous request")
	}
	if role != "visitor" || name != "" || uid != primitive.NilObjectID {
		t.Errorf("unexpected ctx: %q %q %v", role, name, uid)
	}
}

func TestUserCtx_MalformedID(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: "not-hex", Role: auth.RoleStudent})

	if _, _, _, ok := authz.UserCtx(r); ok {
		t.Error("expected ok=false for malformed user id")
	}
}

func TestUserCtx_Valid(t *testing.T) {
	id := primitive.NewObjectID()
	r := httptest.NewRequest("GET", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: id.Hex(), Name: "Sana", Role: "Supervisor"})

	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if role != "supervisor" {
		t.Errorf("role not lowercased: %q", role)
	}
	if name != "Sana" || uid != id {
		t.Errorf("unexpected ctx: %q %v", name, uid)
	}
}

func TestRoleHelpers(t *testing.T) {
	id := primitive.NewObjectID().Hex()

	student := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.TokenUser{ID: id, Role: auth.RoleStudent})
	if !authz.IsStudent(student) || authz.IsSupervisor(student) || authz.IsAdmin(student) {
		t.Error("student role helpers wrong")
	}

	admin := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.TokenUser{ID: id, Role: auth.RoleAdmin})
	if !authz.IsAdmin(admin) || authz.IsSuperAdmin(admin) {
		t.Error("plain admin should not be superadmin")
	}
	if authz.HasWritePermission(admin) {
		t.Error("plain admin without flag should not have write permission")
	}

	super := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.TokenUser{ID: id, Role: auth.RoleAdmin, SuperAdmin: true})
	if !authz.IsSuperAdmin(super) || !authz.HasWritePermission(super) {
		t.Error("superadmin helpers wrong")
	}

	writer := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.TokenUser{ID: id, Role: auth.RoleAdmin, WritePermission: true})
	if !authz.HasWritePermission(writer) {
		t.Error("write_permission admin should have write permission")
	}
}

func TestHasAnyRole(t *testing.T) {
	id := primitive.NewObjectID().Hex()
	r := auth.WithTestUser(httptest.NewRequest("GET", "/", nil),
		&auth.TokenUser{ID: id, Role: auth.RoleSupervisor})

	if !authz.HasAnyRole(r, "admin", "supervisor") {
		t.Error("expected supervisor to match")
	}
	if authz.HasAnyRole(r, "admin", "student") {
		t.Error("expected no match")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), "admin") {
		t.Error("anonymous should never match")
	}
}
