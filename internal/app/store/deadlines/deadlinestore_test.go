package deadlinestore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	deadlinestore "github.com/capstonehub/capstonehub/internal/app/store/deadlines"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func TestStore_Set_CreatesAndReplaces(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := deadlinestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	adminID := primitive.NewObjectID()
	first := time.Now().UTC().Add(7 * 24 * time.Hour).Truncate(time.Second)

	d, err := store.Set(ctx, models.DeadlineProposal, first, adminID)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !d.Due.Equal(first) {
		t.Errorf("Due: got %v, want %v", d.Due, first)
	}

	// Setting the same kind again replaces, never duplicates.
	second := first.Add(48 * time.Hour)
	if _, err := store.Set(ctx, models.DeadlineProposal, second, adminID); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}

	all, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 deadline, got %d", len(all))
	}
	if !all[0].Due.Equal(second) {
		t.Errorf("Due after replace: got %v, want %v", all[0].Due, second)
	}
}

func TestStore_Set_UnknownKind(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := deadlinestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Set(ctx, "thesis", time.Now(), primitive.NewObjectID())
	if err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestStore_Get_NotSet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := deadlinestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Get(ctx, models.DeadlineProject)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListDueWithin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := deadlinestore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	now := time.Now().UTC()
	fixtures.CreateDeadline(ctx, models.DeadlineProposal, now.Add(12*time.Hour))
	fixtures.CreateDeadline(ctx, models.DeadlineDocumentation, now.Add(10*24*time.Hour))
	fixtures.CreateDeadline(ctx, models.DeadlineProject, now.Add(-time.Hour)) // already past

	soon, err := store.ListDueWithin(ctx, 24*time.Hour)
	if err != nil {
		t.Fatalf("ListDueWithin failed: %v", err)
	}
	if len(soon) != 1 {
		t.Fatalf("expected 1 upcoming deadline, got %d", len(soon))
	}
	if soon[0].Kind != models.DeadlineProposal {
		t.Errorf("expected proposal deadline, got %q", soon[0].Kind)
	}
}
