package projectstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	projectstore "github.com/capstonehub/capstonehub/internal/app/store/projects"
	"github.com/capstonehub/capstonehub/internal/app/system/indexes"
	"github.com/capstonehub/capstonehub/internal/domain/models"
	"github.com/capstonehub/capstonehub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{
		Title:       "Smart Campus Navigation",
		Description: "Indoor navigation for the campus",
		Scope:       "Mobile app plus beacon network",
		StudentIDs:  []primitive.ObjectID{primitive.NewObjectID()},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI != "smart campus navigation" {
		t.Errorf("TitleCI: got %q", created.TitleCI)
	}
	if created.Status != models.ProjectPending {
		t.Errorf("expected status pending, got %q", created.Status)
	}
}

func TestStore_Create_DuplicateTitle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	_, err := store.Create(ctx, models.Project{Title: "Duplicate Title"})
	if err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Title uniqueness is portal-wide and case-insensitive.
	_, err = store.Create(ctx, models.Project{Title: "DUPLICATE TITLE"})
	if err != projectstore.ErrDuplicateTitle {
		t.Errorf("expected ErrDuplicateTitle for case-variant, got %v", err)
	}
}

func TestStore_TitleExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Project{Title: "Existing Project"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err := store.TitleExists(ctx, "existing project")
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if !exists {
		t.Error("expected title to exist")
	}

	exists, err = store.TitleExists(ctx, "brand new title")
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if exists {
		t.Error("expected title to be free")
	}
}

func TestStore_MarkAccepted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "Accept Me"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	supID := primitive.NewObjectID()
	if err := store.MarkAccepted(ctx, created.ID, supID); err != nil {
		t.Fatalf("MarkAccepted failed: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.ProjectAccepted {
		t.Errorf("expected status accepted, got %q", got.Status)
	}
	if got.SupervisorID == nil || *got.SupervisorID != supID {
		t.Errorf("expected supervisor %v, got %v", supID, got.SupervisorID)
	}
}

func TestStore_DeactivateIdeas(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	supID := primitive.NewObjectID()
	otherSupID := primitive.NewObjectID()

	for _, title := range []string{"Idea One", "Idea Two"} {
		_, err := store.Create(ctx, models.Project{
			Title:        title,
			SupervisorID: &supID,
			Active:       true,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	other, err := store.Create(ctx, models.Project{
		Title:        "Other Idea",
		SupervisorID: &otherSupID,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.DeactivateIdeas(ctx, supID)
	if err != nil {
		t.Fatalf("DeactivateIdeas failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 ideas deactivated, got %d", n)
	}

	// The other supervisor's idea stays open.
	got, _ := store.GetByID(ctx, other.ID)
	if !got.Active {
		t.Error("other supervisor's idea must stay active")
	}

	ideas, err := store.ListIdeas(ctx)
	if err != nil {
		t.Fatalf("ListIdeas failed: %v", err)
	}
	if len(ideas) != 1 {
		t.Errorf("expected 1 open idea, got %d", len(ideas))
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := projectstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Project{Title: "Doomed Project"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	n, err := store.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}

	_, err = store.GetByID(ctx, created.ID)
	if err != mongo.ErrNoDocuments {
		t.Errorf("expected mongo.ErrNoDocuments after delete, got %v", err)
	}

	// The title is free again after the delete.
	exists, err := store.TitleExists(ctx, "doomed project")
	if err != nil {
		t.Fatalf("TitleExists failed: %v", err)
	}
	if exists {
		t.Error("expected title freed by delete")
	}
}
