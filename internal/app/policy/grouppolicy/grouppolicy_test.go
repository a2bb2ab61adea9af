package grouppolicy_test

import (
	"net/http/httptest"
	"testing"

	"github.com/capstonehub/capstonehub/internal/app/policy/grouppolicy"
	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestIsMember(t *testing.T) {
	sid := primitive.NewObjectID()
	g := &models.Group{StudentIDs: []primitive.ObjectID{sid}}

	if !grouppolicy.IsMember(g, sid) {
		t.Error("expected member")
	}
	if grouppolicy.IsMember(g, primitive.NewObjectID()) {
		t.Error("expected non-member")
	}
}

func TestCanView(t *testing.T) {
	supID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	g := &models.Group{SupervisorID: supID, StudentIDs: []primitive.ObjectID{memberID}}

	tests := []struct {
		name string
		id   primitive.ObjectID
		role string
		want bool
	}{
		{"admin", primitive.NewObjectID(), "admin", true},
		{"supervising faculty", supID, "supervisor", true},
		{"other supervisor", primitive.NewObjectID(), "supervisor", false},
		{"member student", memberID, "student", true},
		{"other student", primitive.NewObjectID(), "student", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r = auth.WithTestUser(r, &auth.TokenUser{ID: tt.id.Hex(), Role: tt.role})
			if got := grouppolicy.CanView(r, g); got != tt.want {
				t.Errorf("CanView = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanView_Anonymous(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	if grouppolicy.CanView(r, &models.Group{}) {
		t.Error("anonymous request must not view groups")
	}
}

func TestCanManage(t *testing.T) {
	supID := primitive.NewObjectID()
	memberID := primitive.NewObjectID()
	g := &models.Group{SupervisorID: supID, StudentIDs: []primitive.ObjectID{memberID}}

	r := httptest.NewRequest("POST", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: supID.Hex(), Role: "supervisor"})
	if !grouppolicy.CanManage(r, g) {
		t.Error("supervising faculty should manage their group")
	}

	r = httptest.NewRequest("POST", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: memberID.Hex(), Role: "student"})
	if grouppolicy.CanManage(r, g) {
		t.Error("students must not manage groups")
	}

	r = httptest.NewRequest("POST", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: primitive.NewObjectID().Hex(), Role: "admin", WritePermission: true})
	if !grouppolicy.CanManage(r, g) {
		t.Error("admin with write permission should manage groups")
	}

	r = httptest.NewRequest("POST", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: primitive.NewObjectID().Hex(), Role: "admin"})
	if grouppolicy.CanManage(r, g) {
		t.Error("read-only admin must not manage groups")
	}
}

func TestCanSubmit(t *testing.T) {
	memberID := primitive.NewObjectID()
	g := &models.Group{SupervisorID: primitive.NewObjectID(), StudentIDs: []primitive.ObjectID{memberID}}

	r := httptest.NewRequest("POST", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: memberID.Hex(), Role: "student"})
	if !grouppolicy.CanSubmit(r, g) {
		t.Error("member student should submit deliverables")
	}

	r = httptest.NewRequest("POST", "/", nil)
	r = auth.WithTestUser(r, &auth.TokenUser{ID: g.SupervisorID.Hex(), Role: "supervisor"})
	if grouppolicy.CanSubmit(r, g) {
		t.Error("supervisor must not submit deliverables")
	}
}
