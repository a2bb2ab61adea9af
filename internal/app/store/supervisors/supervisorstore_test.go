package supervisorstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/app/system/indexes"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := supervisorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Supervisor{
		FullName:    "Dr. Salman Ahmed",
		Email:       "salman@uni.edu",
		Designation: "Professor",
		Slots:       3,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FullNameCI != "dr. salman ahmed" {
		t.Errorf("FullNameCI: got %q", created.FullNameCI)
	}
	if created.Slots != 3 {
		t.Errorf("Slots: got %d, want 3", created.Slots)
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := supervisorstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := store.Create(ctx, models.Supervisor{FullName: "One", Email: "dup@uni.edu", Slots: 3})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = store.Create(ctx, models.Supervisor{FullName: "Two", Email: "dup@uni.edu", Slots: 3})
	if err != supervisorstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_ListAvailable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := supervisorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateSupervisor(ctx, "Full Supervisor", "full@uni.edu", 0)
	open := fixtures.CreateSupervisor(ctx, "Open Supervisor", "open@uni.edu", 2)

	available, err := store.ListAvailable(ctx)
	if err != nil {
		t.Fatalf("ListAvailable failed: %v", err)
	}
	if len(available) != 1 {
		t.Fatalf("expected 1 available supervisor, got %d", len(available))
	}
	if available[0].ID != open.ID {
		t.Errorf("expected %v, got %v", open.ID, available[0].ID)
	}
}

func TestStore_RequestInbox(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := supervisorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sv := fixtures.CreateSupervisor(ctx, "Inbox Supervisor", "inbox@uni.edu", 3)
	projectID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()

	req := models.ProjectRequest{
		ProjectID: projectID,
		StudentID: studentID,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddRequest(ctx, sv.ID, req); err != nil {
		t.Fatalf("AddRequest failed: %v", err)
	}

	got, err := store.GetByID(ctx, sv.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.ProjectRequests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(got.ProjectRequests))
	}
	if got.ProjectRequests[0].IsAccepted {
		t.Error("new requests must be undecided")
	}

	if err := store.MarkRequestAccepted(ctx, sv.ID, projectID); err != nil {
		t.Fatalf("MarkRequestAccepted failed: %v", err)
	}
	got, _ = store.GetByID(ctx, sv.ID)
	if !got.ProjectRequests[0].IsAccepted {
		t.Error("expected request marked accepted")
	}

	if err := store.MarkRequestAccepted(ctx, sv.ID, primitive.NewObjectID()); err != supervisorstore.ErrRequestMissing {
		t.Errorf("expected ErrRequestMissing, got %v", err)
	}

	if err := store.RemoveRequest(ctx, sv.ID, projectID); err != nil {
		t.Fatalf("RemoveRequest failed: %v", err)
	}
	got, _ = store.GetByID(ctx, sv.ID)
	if len(got.ProjectRequests) != 0 {
		t.Error("expected inbox emptied")
	}
}

func TestStore_ClaimSlot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := supervisorstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sv := fixtures.CreateSupervisor(ctx, "Slot Supervisor", "slot@uni.edu", 1)
	groupID := primitive.NewObjectID()

	after, err := store.ClaimSlot(ctx, sv.ID, groupID)
	if err != nil {
		t.Fatalf("ClaimSlot failed: %v", err)
	}
	if after.Slots != 0 {
		t.Errorf("expected 0 slots remaining, got %d", after.Slots)
	}
	if len(after.GroupIDs) != 1 || after.GroupIDs[0] != groupID {
		t.Errorf("expected group recorded, got %v", after.GroupIDs)
	}

	// No slots left: the claim must fail, not go negative.
	_, err = store.ClaimSlot(ctx, sv.ID, primitive.NewObjectID())
	if err != supervisorstore.ErrNoSlots {
		t.Errorf("expected ErrNoSlots, got %v", err)
	}

	got, _ := store.GetByID(ctx, sv.ID)
	if got.Slots != 0 {
		t.Errorf("slots must never go negative, got %d", got.Slots)
	}
}
