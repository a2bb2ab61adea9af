// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"errors"
	"fmt"
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

var (
	ErrDuplicateGroup = errors.New("a group for this project already exists under this supervisor")
	ErrGroupFull      = errors.New("group already has the maximum number of students")
	ErrDocMissing     = errors.New("document not found in group")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.TitleCI = text.Fold(g.Title)
	if g.StudentIDs == nil {
		g.StudentIDs = []primitive.ObjectID{}
	}
	if g.Docs == nil {
		g.Docs = []models.GroupDoc{}
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Group{}, ErrDuplicateGroup
		}
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// GetByStudent resolves the group a student belongs to.
func (s *Store) GetByStudent(ctx context.Context, studentID primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"student_ids": studentID}).Decode(&g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// FindBySupervisorTitle resolves the group for a (supervisor, title)
// pair. The accept path uses this to decide between appending a student
// and creating a fresh group.
func (s *Store) FindBySupervisorTitle(ctx context.Context, supervisorID primitive.ObjectID, titleCI string) (models.Group, error) {
	var g models.Group
	err := s.c.FindOne(ctx, bson.M{"supervisor_id": supervisorID, "title_ci": titleCI}).Decode(&g)
	if err != nil {
		return models.Group{}, err
	}
	return g, nil
}

func (s *Store) ListBySupervisor(ctx context.Context, supervisorID primitive.ObjectID) ([]models.Group, error) {
	return s.find(ctx, bson.M{"supervisor_id": supervisorID})
}

func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddStudent appends a student to the group if it still has room. The
// filter requires fewer than MaxGroupStudents members, so the cap holds
// under concurrent accepts.
func (s *Store) AddStudent(ctx context.Context, groupID, studentID primitive.ObjectID) error {
	lastSlot := fmt.Sprintf("student_ids.%d", models.MaxGroupStudents-1)
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, lastSlot: bson.M{"$exists": false}},
		bson.M{
			"$addToSet": bson.M{"student_ids": studentID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrGroupFull
	}
	return nil
}

// SetMarks records the supervisor's assessment for the group.
func (s *Store) SetMarks(ctx context.Context, groupID primitive.ObjectID, marks models.Marks) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{"$set": bson.M{
		"marks":      marks,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetVivaMark records only the viva component (external examiner flow).
func (s *Store) SetVivaMark(ctx context.Context, groupID primitive.ObjectID, mark int) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{"$set": bson.M{
		"marks.viva": mark,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RecordSubmission stores the upload for one deliverable kind. The kind
// must be a valid deadline kind; the submissions field names match.
func (s *Store) RecordSubmission(ctx context.Context, groupID primitive.ObjectID, kind string, rec models.SubmissionRecord) error {
	if !models.ValidDeadlineKind(kind) {
		return fmt.Errorf("unknown deliverable kind %q", kind)
	}
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{"$set": bson.M{
		"submissions." + kind: rec,
		"updated_at":          time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Working documents                                                          */
/* -------------------------------------------------------------------------- */

// AddDoc shares a working document with the supervisor.
func (s *Store) AddDoc(ctx context.Context, groupID primitive.ObjectID, doc models.GroupDoc) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"docs": doc},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReviewDoc records the supervisor's feedback on a shared document.
func (s *Store) ReviewDoc(ctx context.Context, groupID primitive.ObjectID, docID, review string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "docs.id": docID},
		bson.M{"$set": bson.M{
			"docs.$.review": review,
			"updated_at":    time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDocMissing
	}
	return nil
}

// RemoveDoc deletes a shared document by id.
func (s *Store) RemoveDoc(ctx context.Context, groupID primitive.ObjectID, docID string) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"docs": bson.M{"id": docID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrDocMissing
	}
	return nil
}
