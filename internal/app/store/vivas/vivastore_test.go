package vivastore_test

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	vivastore "github.com/capstonehub/capstonehub/internal/app/store/vivas"
	"github.com/capstonehub/capstonehub/internal/app/system/indexes"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := vivastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Viva{
		GroupID:     primitive.NewObjectID(),
		ExternalID:  primitive.NewObjectID(),
		ScheduledAt: time.Now().UTC().Add(14 * 24 * time.Hour),
		Venue:       "Seminar Room B",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Status != models.VivaScheduled {
		t.Errorf("expected status scheduled, got %q", created.Status)
	}
}

func TestStore_Create_OnePerGroup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := vivastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	groupID := primitive.NewObjectID()
	v := models.Viva{
		GroupID:     groupID,
		ExternalID:  primitive.NewObjectID(),
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour),
	}

	if _, err := store.Create(ctx, v); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	if _, err := store.Create(ctx, v); err != vivastore.ErrAlreadyScheduled {
		t.Errorf("expected ErrAlreadyScheduled, got %v", err)
	}
}

func TestStore_Reschedule(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := vivastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Viva{
		GroupID:     primitive.NewObjectID(),
		ExternalID:  primitive.NewObjectID(),
		ScheduledAt: time.Now().UTC().Add(24 * time.Hour),
		Venue:       "Room 1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTime := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Second)
	if err := store.Reschedule(ctx, created.ID, newTime, "Room 2", primitive.NilObjectID); err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}

	got, _ := store.GetByID(ctx, created.ID)
	if !got.ScheduledAt.Equal(newTime) {
		t.Errorf("ScheduledAt: got %v, want %v", got.ScheduledAt, newTime)
	}
	if got.Venue != "Room 2" {
		t.Errorf("Venue: got %q", got.Venue)
	}
	// Examiner untouched when NilObjectID passed.
	if got.ExternalID != created.ExternalID {
		t.Error("examiner must stay unchanged")
	}
}

func TestStore_ListByExternal(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := vivastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	examiner := primitive.NewObjectID()
	for i := 0; i < 2; i++ {
		_, err := store.Create(ctx, models.Viva{
			GroupID:     primitive.NewObjectID(),
			ExternalID:  examiner,
			ScheduledAt: time.Now().UTC().Add(time.Duration(i+1) * 24 * time.Hour),
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	_, err := store.Create(ctx, models.Viva{
		GroupID:     primitive.NewObjectID(),
		ExternalID:  primitive.NewObjectID(),
		ScheduledAt: time.Now().UTC().Add(72 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	mine, err := store.ListByExternal(ctx, examiner)
	if err != nil {
		t.Fatalf("ListByExternal failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 vivas for examiner, got %d", len(mine))
	}
	// Calendar order.
	if len(mine) == 2 && mine[0].ScheduledAt.After(mine[1].ScheduledAt) {
		t.Error("expected vivas sorted by scheduled time")
	}
}
