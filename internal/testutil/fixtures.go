package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Repeated calls accumulate parameters on the same route context.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok || rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
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

// CreateStudent creates an ungrouped test student.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email, rollNo string) models.Student {
	f.t.Helper()

	now := time.Now().UTC()
	st := models.Student{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		RollNo:     rollNo,
		Status:     "active",
		Requests: models.RequestLedger{
			Pending:  []primitive.ObjectID{},
			Received: []primitive.ObjectID{},
			Rejected: []primitive.ObjectID{},
		},
		Notifications: models.NotificationBox{
			Unseen: []models.Notification{},
			Seen:   []models.Notification{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("students").InsertOne(ctx, st); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return st
}

// CreateSupervisor creates a test supervisor with the given capacity.
func (f *Fixtures) CreateSupervisor(ctx context.Context, fullName, email string, slots int) models.Supervisor {
	f.t.Helper()

	now := time.Now().UTC()
	sv := models.Supervisor{
		ID:              primitive.NewObjectID(),
		FullName:        fullName,
		FullNameCI:      text.Fold(fullName),
		Email:           email,
		Designation:     "Assistant Professor",
		Status:          "active",
		Slots:           slots,
		GroupIDs:        []primitive.ObjectID{},
		ProjectRequests: []models.ProjectRequest{},
		Notifications: models.NotificationBox{
			Unseen: []models.Notification{},
			Seen:   []models.Notification{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("supervisors").InsertOne(ctx, sv); err != nil {
		f.t.Fatalf("failed to create test supervisor: %v", err)
	}
	return sv
}

// CreateAdmin creates a test admin with the given capability flags.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string, superAdmin, writePermission bool) models.Admin {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Admin{
		ID:              primitive.NewObjectID(),
		FullName:        fullName,
		Email:           email,
		SuperAdmin:      superAdmin,
		WritePermission: writePermission,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := f.db.Collection("admins").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}
	return a
}

// CreatePendingProject creates a student proposal awaiting a decision.
func (f *Fixtures) CreatePendingProject(ctx context.Context, title string, studentID, supervisorID primitive.ObjectID) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Project{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      text.Fold(title),
		Description:  "Test description",
		Scope:        "Test scope",
		StudentIDs:   []primitive.ObjectID{studentID},
		SupervisorID: &supervisorID,
		Status:       models.ProjectPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return p
}

// CreateGroup creates a group under a supervisor with the given members.
func (f *Fixtures) CreateGroup(ctx context.Context, title string, supervisorID, projectID primitive.ObjectID, studentIDs ...primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	if studentIDs == nil {
		studentIDs = []primitive.ObjectID{}
	}
	g := models.Group{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      text.Fold(title),
		SupervisorID: supervisorID,
		ProjectID:    projectID,
		StudentIDs:   studentIDs,
		Docs:         []models.GroupDoc{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	if len(studentIDs) > 0 {
		_, err := f.db.Collection("students").UpdateMany(ctx,
			bson.M{"_id": bson.M{"$in": studentIDs}},
			bson.M{"$set": bson.M{
				"is_group_member": true,
				"group_id":        g.ID,
			}})
		if err != nil {
			f.t.Fatalf("failed to mark students grouped: %v", err)
		}
	}
	return g
}

// CreateExternal creates a test external examiner.
func (f *Fixtures) CreateExternal(ctx context.Context, fullName, email string) models.External {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.External{
		ID:          primitive.NewObjectID(),
		FullName:    fullName,
		Email:       email,
		Affiliation: "Test University",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("externals").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test external: %v", err)
	}
	return e
}

// CreateDeadline creates a portal-wide deadline for one deliverable kind.
func (f *Fixtures) CreateDeadline(ctx context.Context, kind string, due time.Time) models.Deadline {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Deadline{
		ID:        primitive.NewObjectID(),
		Kind:      kind,
		Due:       due.UTC(),
		SetBy:     primitive.NewObjectID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("deadlines").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test deadline: %v", err)
	}
	return d
}
