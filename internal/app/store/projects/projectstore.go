// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/capstonehub/capstonehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

// ErrDuplicateTitle enforces portal-wide title uniqueness, backed by the
// unique index on title_ci.
var ErrDuplicateTitle = errors.New("a project with this title already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.TitleCI = text.Fold(p.Title)
	if p.Status == "" {
		p.Status = models.ProjectPending
	}
	if p.StudentIDs == nil {
		p.StudentIDs = []primitive.ObjectID{}
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Project{}, ErrDuplicateTitle
		}
		return models.Project{}, err
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByTitle resolves a project by its folded title.
func (s *Store) GetByTitle(ctx context.Context, titleCI string) (models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"title_ci": titleCI}).Decode(&p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// TitleExists reports whether any project already uses the folded title.
func (s *Store) TitleExists(ctx context.Context, titleCI string) (bool, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{"title_ci": titleCI})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListIdeas returns supervisor-offered projects still open for proposals.
func (s *Store) ListIdeas(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{"status": models.ProjectPending, "active": true})
}

// ListIdeasBySupervisor returns one supervisor's offered ideas, open or not.
func (s *Store) ListIdeasBySupervisor(ctx context.Context, supervisorID primitive.ObjectID) ([]models.Project, error) {
	return s.find(ctx, bson.M{"supervisor_id": supervisorID, "student_ids": bson.M{"$size": 0}})
}

// ListAccepted returns projects that have become group work.
func (s *Store) ListAccepted(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{"status": models.ProjectAccepted})
}

// List returns every project regardless of status (admin oversight).
func (s *Store) List(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarkAccepted flips the project to accepted and records the owning
// supervisor.
func (s *Store) MarkAccepted(ctx context.Context, id, supervisorID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":        models.ProjectAccepted,
		"supervisor_id": supervisorID,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// AddStudent appends a student to the project's roster.
func (s *Store) AddStudent(ctx context.Context, id, studentID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{
		"$addToSet": bson.M{"student_ids": studentID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// DeactivateIdeas closes all of a supervisor's open ideas. Called when
// the supervisor's last slot is consumed.
func (s *Store) DeactivateIdeas(ctx context.Context, supervisorID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"supervisor_id": supervisorID, "active": true},
		bson.M{"$set": bson.M{"active": false, "updated_at": time.Now().UTC()}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// Delete removes a project by ID (the reject path discards the pending
// proposal entirely). Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
