package extensionstore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	extensionstore "github.com/capstonehub/capstonehub/internal/app/store/extensions"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := extensionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Extension{
		GroupID:   primitive.NewObjectID(),
		StudentID: primitive.NewObjectID(),
		Kind:      models.DeadlineProposal,
		Reason:    "supervisor was away",
		Until:     time.Now().UTC().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != models.ExtensionPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
	if created.DecidedBy != nil {
		t.Error("new requests must be undecided")
	}
}

func TestStore_Create_OnePendingPerKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := extensionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	base := models.Extension{
		GroupID:   groupID,
		StudentID: primitive.NewObjectID(),
		Kind:      models.DeadlineProposal,
		Until:     time.Now().UTC().Add(72 * time.Hour),
	}

	if _, err := store.Create(ctx, base); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, base); err != extensionstore.ErrAlreadyPending {
		t.Errorf("expected ErrAlreadyPending, got %v", err)
	}

	// A different deliverable kind is allowed.
	other := base
	other.Kind = models.DeadlineDocumentation
	if _, err := store.Create(ctx, other); err != nil {
		t.Errorf("different kind should succeed: %v", err)
	}
}

func TestStore_Decide(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := extensionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Extension{
		GroupID:   primitive.NewObjectID(),
		StudentID: primitive.NewObjectID(),
		Kind:      models.DeadlineProject,
		Until:     time.Now().UTC().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	adminID := primitive.NewObjectID()
	decided, err := store.Decide(ctx, created.ID, models.ExtensionApproved, adminID)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if decided.Status != models.ExtensionApproved {
		t.Errorf("expected approved, got %q", decided.Status)
	}
	if decided.DecidedBy == nil || *decided.DecidedBy != adminID {
		t.Errorf("expected decided_by %v, got %v", adminID, decided.DecidedBy)
	}

	// Second decision on the same request must fail.
	_, err = store.Decide(ctx, created.ID, models.ExtensionRejected, adminID)
	if err != extensionstore.ErrAlreadyDecided {
		t.Errorf("expected ErrAlreadyDecided, got %v", err)
	}
}

func TestStore_Decide_InvalidStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := extensionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Decide(ctx, primitive.NewObjectID(), "maybe", primitive.NewObjectID())
	if err == nil {
		t.Error("expected error for invalid decision status")
	}
}

func TestStore_ApprovedUntil(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := extensionstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	groupID := primitive.NewObjectID()
	until := time.Now().UTC().Add(96 * time.Hour).Truncate(time.Second)

	created, err := store.Create(ctx, models.Extension{
		GroupID:   groupID,
		StudentID: primitive.NewObjectID(),
		Kind:      models.DeadlineProposal,
		Until:     until,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Pending requests grant nothing.
	got, err := store.ApprovedUntil(ctx, groupID, models.DeadlineProposal)
	if err != nil {
		t.Fatalf("ApprovedUntil failed: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("pending extension must not extend the deadline, got %v", got)
	}

	if _, err := store.Decide(ctx, created.ID, models.ExtensionApproved, primitive.NewObjectID()); err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	got, err = store.ApprovedUntil(ctx, groupID, models.DeadlineProposal)
	if err != nil {
		t.Fatalf("ApprovedUntil failed: %v", err)
	}
	if !got.Equal(until) {
		t.Errorf("ApprovedUntil: got %v, want %v", got, until)
	}
}
