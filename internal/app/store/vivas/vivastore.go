// internal/app/store/vivas/vivastore.go
package vivastore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/capstonehub/capstonehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

// ErrAlreadyScheduled enforces one viva per group, backed by the unique
// index on group_id.
var ErrAlreadyScheduled = errors.New("a viva is already scheduled for this group")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("vivas")}
}

func (s *Store) Create(ctx context.Context, v models.Viva) (models.Viva, error) {
	now := time.Now().UTC()
	v.ID = primitive.NewObjectID()
	if v.Status == "" {
		v.Status = models.VivaScheduled
	}
	v.CreatedAt = now
	v.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, v); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Viva{}, ErrAlreadyScheduled
		}
		return models.Viva{}, err
	}
	return v, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Viva, error) {
	var v models.Viva
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&v); err != nil {
		return models.Viva{}, err
	}
	return v, nil
}

func (s *Store) GetByGroup(ctx context.Context, groupID primitive.ObjectID) (models.Viva, error) {
	var v models.Viva
	if err := s.c.FindOne(ctx, bson.M{"group_id": groupID}).Decode(&v); err != nil {
		return models.Viva{}, err
	}
	return v, nil
}

// List returns all vivas in calendar order.
func (s *Store) List(ctx context.Context) ([]models.Viva, error) {
	return s.find(ctx, bson.M{})
}

// ListByExternal returns the vivas assigned to one external examiner.
func (s *Store) ListByExternal(ctx context.Context, externalID primitive.ObjectID) ([]models.Viva, error) {
	return s.find(ctx, bson.M{"external_id": externalID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Viva, error) {
	opts := options.Find().SetSort(bson.D{{Key: "scheduled_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Viva{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Reschedule moves a viva to a new time, venue, or examiner.
func (s *Store) Reschedule(ctx context.Context, id primitive.ObjectID, scheduledAt time.Time, venue string, externalID primitive.ObjectID) error {
	set := bson.M{
		"scheduled_at": scheduledAt.UTC(),
		"updated_at":   time.Now().UTC(),
	}
	if venue != "" {
		set["venue"] = venue
	}
	if externalID != primitive.NilObjectID {
		set["external_id"] = externalID
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// SetStatus marks a viva completed or cancelled.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     status,
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

// Delete removes a viva by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
