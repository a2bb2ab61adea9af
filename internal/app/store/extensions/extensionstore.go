// internal/app/store/extensions/extensionstore.go
package extensionstore

import (
	"context"
	"errors"
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

var (
	ErrAlreadyDecided = errors.New("extension request has already been decided")
	ErrAlreadyPending = errors.New("a pending extension for this deliverable already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("extensions")}
}

// Create files a new pending extension request. A group can hold at most
// one pending request per deliverable kind.
func (s *Store) Create(ctx context.Context, e models.Extension) (models.Extension, error) {
	n, err := s.c.CountDocuments(ctx, bson.M{
		"group_id": e.GroupID,
		"kind":     e.Kind,
		"status":   models.ExtensionPending,
	})
	if err != nil {
		return models.Extension{}, err
	}
	if n > 0 {
		return models.Extension{}, ErrAlreadyPending
	}

	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.Status = models.ExtensionPending
	e.DecidedBy = nil
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Extension{}, err
	}
	return e, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Extension, error) {
	var e models.Extension
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Extension{}, err
	}
	return e, nil
}

// ListPending returns the admin review queue, newest first.
func (s *Store) ListPending(ctx context.Context) ([]models.Extension, error) {
	return s.find(ctx, bson.M{"status": models.ExtensionPending})
}

// ListByGroup returns a group's extension history.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Extension, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Extension, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Extension{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Decide resolves a pending request. The filter requires pending status,
// so a second decision on the same request fails with ErrAlreadyDecided.
func (s *Store) Decide(ctx context.Context, id primitive.ObjectID, status string, decidedBy primitive.ObjectID) (models.Extension, error) {
	if status != models.ExtensionApproved && status != models.ExtensionRejected {
		return models.Extension{}, errors.New("decision must be approved or rejected")
	}

	var e models.Extension
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.ExtensionPending},
		bson.M{"$set": bson.M{
			"status":     status,
			"decided_by": decidedBy,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&e)
	if err == mongo.ErrNoDocuments {
		// Distinguish a missing request from a decided one.
		if _, getErr := s.GetByID(ctx, id); getErr == nil {
			return models.Extension{}, ErrAlreadyDecided
		}
		return models.Extension{}, mongo.ErrNoDocuments
	}
	if err != nil {
		return models.Extension{}, err
	}
	return e, nil
}

// ApprovedUntil returns the latest approved extension deadline for a
// group and deliverable kind, or zero time when none exists. Submission
// checks treat max(portal deadline, approved extension) as the cutoff.
func (s *Store) ApprovedUntil(ctx context.Context, groupID primitive.ObjectID, kind string) (time.Time, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "until", Value: -1}})
	var e models.Extension
	err := s.c.FindOne(ctx, bson.M{
		"group_id": groupID,
		"kind":     kind,
		"status":   models.ExtensionApproved,
	}, opts).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return e.Until, nil
}
