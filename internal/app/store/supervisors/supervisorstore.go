// internal/app/store/supervisors/supervisorstore.go
package supervisorstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail = errors.New("a supervisor with this email already exists")
	ErrNoSlots        = errors.New("supervisor has no available slots")
	ErrRequestMissing = errors.New("request not found in supervisor inbox")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("supervisors")}
}

func (s *Store) Create(ctx context.Context, sv models.Supervisor) (models.Supervisor, error) {
	now := time.Now().UTC()
	sv.ID = primitive.NewObjectID()
	sv.FullNameCI = text.Fold(sv.FullName)
	if sv.Status == "" {
		sv.Status = "active"
	}
	if sv.GroupIDs == nil {
		sv.GroupIDs = []primitive.ObjectID{}
	}
	if sv.ProjectRequests == nil {
		sv.ProjectRequests = []models.ProjectRequest{}
	}
	if sv.Notifications.Unseen == nil {
		sv.Notifications.Unseen = []models.Notification{}
	}
	if sv.Notifications.Seen == nil {
		sv.Notifications.Seen = []models.Notification{}
	}
	sv.CreatedAt = now
	sv.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, sv); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Supervisor{}, ErrDuplicateEmail
		}
		return models.Supervisor{}, err
	}
	return sv, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Supervisor, error) {
	var sv models.Supervisor
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sv); err != nil {
		return models.Supervisor{}, err
	}
	return sv, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Supervisor, error) {
	var sv models.Supervisor
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&sv); err != nil {
		return models.Supervisor{}, err
	}
	return sv, nil
}

// List returns all supervisors sorted by folded name.
func (s *Store) List(ctx context.Context) ([]models.Supervisor, error) {
	return s.find(ctx, bson.M{},
		bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
}

// ListAvailable returns supervisors who can still accept a new group,
// most open slots first.
func (s *Store) ListAvailable(ctx context.Context) ([]models.Supervisor, error) {
	return s.find(ctx, bson.M{"slots": bson.M{"$gt": 0}},
		bson.D{{Key: "slots", Value: -1}, {Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
}

func (s *Store) find(ctx context.Context, filter bson.M, sort bson.D) ([]models.Supervisor, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Supervisor{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, designation string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(fullName) != "" {
		set["full_name"] = fullName
		set["full_name_ci"] = text.Fold(fullName)
	}
	if strings.TrimSpace(designation) != "" {
		set["designation"] = designation
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// SetSlots replaces a supervisor's remaining capacity (admin operation).
func (s *Store) SetSlots(ctx context.Context, id primitive.ObjectID, slots int) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"slots":      slots,
		"updated_at": time.Now().UTC(),
	}})
	return err
}

// Delete removes a supervisor by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/* -------------------------------------------------------------------------- */
/* Request inbox                                                              */
/* -------------------------------------------------------------------------- */

// AddRequest appends a student's request to the supervisor's inbox.
func (s *Store) AddRequest(ctx context.Context, supervisorID primitive.ObjectID, req models.ProjectRequest) error {
	_, err := s.c.UpdateByID(ctx, supervisorID, bson.M{
		"$push": bson.M{"project_requests": req},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// MarkRequestAccepted flips the inbox entry for a project to accepted.
func (s *Store) MarkRequestAccepted(ctx context.Context, supervisorID, projectID primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": supervisorID, "project_requests.project_id": projectID},
		bson.M{"$set": bson.M{
			"project_requests.$.is_accepted": true,
			"updated_at":                     time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRequestMissing
	}
	return nil
}

// RemoveRequest drops an inbox entry (used when a request is rejected).
func (s *Store) RemoveRequest(ctx context.Context, supervisorID, projectID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, supervisorID, bson.M{
		"$pull": bson.M{"project_requests": bson.M{"project_id": projectID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrRequestMissing
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Groups and slots                                                           */
/* -------------------------------------------------------------------------- */

// ClaimSlot atomically consumes one slot and records the new group. The
// filter requires a free slot, so two concurrent accepts cannot
// oversubscribe a supervisor. Returns the supervisor after the update so
// callers can observe slots reaching zero.
func (s *Store) ClaimSlot(ctx context.Context, supervisorID, groupID primitive.ObjectID) (models.Supervisor, error) {
	var sv models.Supervisor
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": supervisorID, "slots": bson.M{"$gt": 0}},
		bson.M{
			"$inc":  bson.M{"slots": -1},
			"$push": bson.M{"group_ids": groupID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&sv)
	if err == mongo.ErrNoDocuments {
		return models.Supervisor{}, ErrNoSlots
	}
	if err != nil {
		return models.Supervisor{}, err
	}
	return sv, nil
}

/* -------------------------------------------------------------------------- */
/* Notifications                                                              */
/* -------------------------------------------------------------------------- */

func (s *Store) PushNotification(ctx context.Context, supervisorIDs []primitive.ObjectID, n models.Notification) error {
	return notify.Push(ctx, s.c, supervisorIDs, n)
}

func (s *Store) MarkNotificationSeen(ctx context.Context, supervisorID primitive.ObjectID, notifID string) error {
	return notify.MarkSeen(ctx, s.c, supervisorID, notifID)
}

func (s *Store) RemoveNotification(ctx context.Context, supervisorID primitive.ObjectID, notifID string) error {
	return notify.Remove(ctx, s.c, supervisorID, notifID)
}
