// internal/app/store/deadlines/deadlinestore.go
package deadlinestore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/capstonehub/capstonehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("deadlines")}
}

// Set creates or replaces the deadline for one deliverable kind. The
// unique index on kind keeps at most one document per kind.
func (s *Store) Set(ctx context.Context, kind string, due time.Time, setBy primitive.ObjectID) (models.Deadline, error) {
	if !models.ValidDeadlineKind(kind) {
		return models.Deadline{}, fmt.Errorf("unknown deadline kind %q", kind)
	}
	now := time.Now().UTC()

	var d models.Deadline
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"kind": kind},
		bson.M{
			"$set": bson.M{
				"due":        due.UTC(),
				"set_by":     setBy,
				"updated_at": now,
			},
			"$setOnInsert": bson.M{
				"kind":       kind,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&d)
	if err != nil {
		return models.Deadline{}, err
	}
	return d, nil
}

// Get returns the deadline for one kind, or mongo.ErrNoDocuments when
// the admin has not set it yet.
func (s *Store) Get(ctx context.Context, kind string) (models.Deadline, error) {
	var d models.Deadline
	if err := s.c.FindOne(ctx, bson.M{"kind": kind}).Decode(&d); err != nil {
		return models.Deadline{}, err
	}
	return d, nil
}

// List returns all set deadlines ordered by due date.
func (s *Store) List(ctx context.Context) ([]models.Deadline, error) {
	opts := options.Find().SetSort(bson.D{{Key: "due", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Deadline{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListDueWithin returns deadlines falling inside [now, now+window). The
// reminder worker uses it to pick which kinds need a nudge.
func (s *Store) ListDueWithin(ctx context.Context, window time.Duration) ([]models.Deadline, error) {
	now := time.Now().UTC()
	opts := options.Find().SetSort(bson.D{{Key: "due", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{
		"due": bson.M{"$gte": now, "$lt": now.Add(window)},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Deadline{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the deadline for one kind. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, kind string) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"kind": kind})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
