package studentstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	"github.com/capstonehub/capstonehub/internal/app/system/indexes"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Student{
		FullName: "Aisha Khan",
		Email:    "aisha@uni.edu",
		RollNo:   "FA21-001",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.FullNameCI != "aisha khan" {
		t.Errorf("FullNameCI: got %q, want %q", created.FullNameCI, "aisha khan")
	}
	if created.Status != "active" {
		t.Errorf("expected status 'active', got %q", created.Status)
	}
	if created.IsGroupMember {
		t.Error("new students must be ungrouped")
	}
	if created.Requests.Pending == nil || created.Requests.Rejected == nil {
		t.Error("expected empty ledgers, not nil")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := store.Create(ctx, models.Student{FullName: "One", Email: "dup@uni.edu", RollNo: "FA21-001"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = store.Create(ctx, models.Student{FullName: "Two", Email: "dup@uni.edu", RollNo: "FA21-002"})
	if err != studentstore.ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_DuplicateRollNo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := store.Create(ctx, models.Student{FullName: "One", Email: "a@uni.edu", RollNo: "FA21-001"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err = store.Create(ctx, models.Student{FullName: "Two", Email: "b@uni.edu", RollNo: "FA21-001"})
	if err != studentstore.ErrDuplicateRollNo {
		t.Errorf("expected ErrDuplicateRollNo, got %v", err)
	}
}

func TestStore_GetByEmail_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.GetByEmail(ctx, "missing@uni.edu")
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_Ledger(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Ledger Student", "ledger@uni.edu", "FA21-010")
	supID := primitive.NewObjectID()

	if err := store.AddPending(ctx, st.ID, supID); err != nil {
		t.Fatalf("AddPending failed: %v", err)
	}
	got, err := store.GetByID(ctx, st.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Requests.Pending) != 1 || got.Requests.Pending[0] != supID {
		t.Fatalf("expected one pending entry for %v, got %v", supID, got.Requests.Pending)
	}

	// AddPending is idempotent per supervisor.
	if err := store.AddPending(ctx, st.ID, supID); err != nil {
		t.Fatalf("second AddPending failed: %v", err)
	}
	got, _ = store.GetByID(ctx, st.ID)
	if len(got.Requests.Pending) != 1 {
		t.Errorf("expected pending to stay deduplicated, got %v", got.Requests.Pending)
	}

	// A rejection clears pending and blocks the supervisor permanently.
	if err := store.AddRejected(ctx, st.ID, supID); err != nil {
		t.Fatalf("AddRejected failed: %v", err)
	}
	got, _ = store.GetByID(ctx, st.ID)
	if len(got.Requests.Pending) != 0 {
		t.Errorf("expected pending cleared, got %v", got.Requests.Pending)
	}
	if len(got.Requests.Rejected) != 1 || got.Requests.Rejected[0] != supID {
		t.Errorf("expected rejection recorded, got %v", got.Requests.Rejected)
	}
}

func TestStore_JoinGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := fixtures.CreateStudent(ctx, "Member A", "a@uni.edu", "FA21-001")
	b := fixtures.CreateStudent(ctx, "Member B", "b@uni.edu", "FA21-002")
	groupID := primitive.NewObjectID()

	_ = store.AddPending(ctx, a.ID, primitive.NewObjectID())
	_ = store.AddRejected(ctx, a.ID, primitive.NewObjectID())

	if err := store.JoinGroup(ctx, []primitive.ObjectID{a.ID, b.ID}, groupID); err != nil {
		t.Fatalf("JoinGroup failed: %v", err)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.IsGroupMember {
		t.Error("expected is_group_member true")
	}
	if got.GroupID == nil || *got.GroupID != groupID {
		t.Errorf("expected group_id %v, got %v", groupID, got.GroupID)
	}
	if len(got.Requests.Pending) != 0 || len(got.Requests.Received) != 0 {
		t.Error("expected open ledgers cleared on grouping")
	}
	if len(got.Requests.Rejected) != 1 {
		t.Error("rejection history must survive grouping")
	}

	ungrouped, err := store.ListUngrouped(ctx)
	if err != nil {
		t.Fatalf("ListUngrouped failed: %v", err)
	}
	if len(ungrouped) != 0 {
		t.Errorf("expected no ungrouped students, got %d", len(ungrouped))
	}
}

func TestStore_Notifications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Notify Student", "notify@uni.edu", "FA21-020")

	n := notify.New(models.NotifyImportant, "proposal deadline set")
	if err := store.PushNotification(ctx, []primitive.ObjectID{st.ID}, n); err != nil {
		t.Fatalf("PushNotification failed: %v", err)
	}

	got, _ := store.GetByID(ctx, st.ID)
	if len(got.Notifications.Unseen) != 1 {
		t.Fatalf("expected one unseen notification, got %d", len(got.Notifications.Unseen))
	}
	if got.Notifications.Unseen[0].ID == "" {
		t.Error("notification must carry a stable id")
	}

	if err := store.MarkNotificationSeen(ctx, st.ID, n.ID); err != nil {
		t.Fatalf("MarkNotificationSeen failed: %v", err)
	}
	got, _ = store.GetByID(ctx, st.ID)
	if len(got.Notifications.Unseen) != 0 || len(got.Notifications.Seen) != 1 {
		t.Fatalf("expected notification moved to seen, got unseen=%d seen=%d",
			len(got.Notifications.Unseen), len(got.Notifications.Seen))
	}

	if err := store.RemoveNotification(ctx, st.ID, n.ID); err != nil {
		t.Fatalf("RemoveNotification failed: %v", err)
	}
	got, _ = store.GetByID(ctx, st.ID)
	if len(got.Notifications.Seen) != 0 {
		t.Error("expected notification removed")
	}

	if err := store.RemoveNotification(ctx, st.ID, n.ID); err != notify.ErrNotFound {
		t.Errorf("expected ErrNotFound for repeated removal, got %v", err)
	}
}

func TestStore_MarkNotificationSeen_UnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := studentstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	st := fixtures.CreateStudent(ctx, "Notify Student", "notify@uni.edu", "FA21-021")

	err := store.MarkNotificationSeen(ctx, st.ID, "no-such-id")
	if err != notify.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
