// internal/app/store/students/studentstore.go
package studentstore

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
	ErrDuplicateEmail  = errors.New("a student with this email already exists")
	ErrDuplicateRollNo = errors.New("a student with this roll number already exists")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("students")}
}

func (s *Store) Create(ctx context.Context, st models.Student) (models.Student, error) {
	now := time.Now().UTC()
	st.ID = primitive.NewObjectID()
	st.FullNameCI = text.Fold(st.FullName)
	if st.Status == "" {
		st.Status = "active"
	}
	if st.Requests.Pending == nil {
		st.Requests.Pending = []primitive.ObjectID{}
	}
	if st.Requests.Received == nil {
		st.Requests.Received = []primitive.ObjectID{}
	}
	if st.Requests.Rejected == nil {
		st.Requests.Rejected = []primitive.ObjectID{}
	}
	if st.Notifications.Unseen == nil {
		st.Notifications.Unseen = []models.Notification{}
	}
	if st.Notifications.Seen == nil {
		st.Notifications.Seen = []models.Notification{}
	}
	st.CreatedAt = now
	st.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, st); err != nil {
		if wafflemongo.IsDup(err) {
			if strings.Contains(err.Error(), "rollno") {
				return models.Student{}, ErrDuplicateRollNo
			}
			return models.Student{}, ErrDuplicateEmail
		}
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Student, error) {
	var st models.Student
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&st); err != nil {
		return models.Student{}, err
	}
	return st, nil
}

// List returns all students sorted by folded name with a stable tiebreak.
func (s *Store) List(ctx context.Context) ([]models.Student, error) {
	return s.find(ctx, bson.M{})
}

// ListUngrouped returns students still eligible for group formation.
func (s *Store) ListUngrouped(ctx context.Context) ([]models.Student, error) {
	return s.find(ctx, bson.M{"is_group_member": false})
}

// ListByGroup returns the members of one group.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Student, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Student, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Student{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName string) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if strings.TrimSpace(fullName) != "" {
		set["full_name"] = fullName
		set["full_name_ci"] = text.Fold(fullName)
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

// Delete removes a student by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

/* -------------------------------------------------------------------------- */
/* Request ledger                                                             */
/* -------------------------------------------------------------------------- */

// AddPending records an outstanding request to a supervisor.
func (s *Store) AddPending(ctx context.Context, studentID, supervisorID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, studentID, bson.M{
		"$addToSet": bson.M{"requests.pending": supervisorID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// RemovePending clears an outstanding request after a decision.
func (s *Store) RemovePending(ctx context.Context, studentID, supervisorID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, studentID, bson.M{
		"$pull": bson.M{"requests.pending": supervisorID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// AddRejected moves a supervisor onto the permanent rejection list. The
// pending entry is cleared in the same update.
func (s *Store) AddRejected(ctx context.Context, studentID, supervisorID primitive.ObjectID) error {
	_, err := s.c.UpdateByID(ctx, studentID, bson.M{
		"$pull":     bson.M{"requests.pending": supervisorID},
		"$addToSet": bson.M{"requests.rejected": supervisorID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// JoinGroup marks the listed students as grouped and clears their open
// ledgers. Rejection history is kept.
func (s *Store) JoinGroup(ctx context.Context, studentIDs []primitive.ObjectID, groupID primitive.ObjectID) error {
	_, err := s.c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": studentIDs}},
		bson.M{"$set": bson.M{
			"is_group_member":   true,
			"group_id":          groupID,
			"requests.pending":  []primitive.ObjectID{},
			"requests.received": []primitive.ObjectID{},
			"updated_at":        time.Now().UTC(),
		}})
	return err
}

/* -------------------------------------------------------------------------- */
/* Notifications                                                              */
/* -------------------------------------------------------------------------- */

func (s *Store) PushNotification(ctx context.Context, studentIDs []primitive.ObjectID, n models.Notification) error {
	return notify.Push(ctx, s.c, studentIDs, n)
}

func (s *Store) MarkNotificationSeen(ctx context.Context, studentID primitive.ObjectID, notifID string) error {
	return notify.MarkSeen(ctx, s.c, studentID, notifID)
}

func (s *Store) RemoveNotification(ctx context.Context, studentID primitive.ObjectID, notifID string) error {
	return notify.Remove(ctx, s.c, studentID, notifID)
}
