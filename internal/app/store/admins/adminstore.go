// internal/app/store/admins/adminstore.go
package adminstore

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

var ErrDuplicateEmail = errors.New("an admin with this email already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

func (s *Store) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateEmail
		}
		return models.Admin{}, err
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Admin{}, err
	}
	return a, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	if err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&a); err != nil {
		return models.Admin{}, err
	}
	return a, nil
}

func (s *Store) List(ctx context.Context) ([]models.Admin, error) {
	opts := options.Find().SetSort(bson.D{{Key: "email", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Admin{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetPermissions updates the capability flags of a non-superadmin account.
// Superadmin accounts cannot be demoted here.
func (s *Store) SetPermissions(ctx context.Context, id primitive.ObjectID, writePermission bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "super_admin": false},
		bson.M{"$set": bson.M{
			"write_permission": writePermission,
			"updated_at":       time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password_hash": passwordHash,
		"updated_at":    time.Now().UTC(),
	}})
	return err
}

// Delete removes a non-superadmin account. Returns the number of
// documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "super_admin": false})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// EnsureSuperAdmin creates the bootstrap superadmin account if no account
// with the email exists. Called at startup; idempotent.
func (s *Store) EnsureSuperAdmin(ctx context.Context, fullName, email, passwordHash string) (models.Admin, bool, error) {
	var existing models.Admin
	err := s.c.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
	if err == nil {
		return existing, false, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Admin{}, false, err
	}

	created, err := s.Create(ctx, models.Admin{
		FullName:        fullName,
		Email:           email,
		PasswordHash:    passwordHash,
		SuperAdmin:      true,
		WritePermission: true,
	})
	if err == ErrDuplicateEmail {
		// Raced with another instance; re-read the winner.
		err = s.c.FindOne(ctx, bson.M{"email": email}).Decode(&existing)
		return existing, false, err
	}
	if err != nil {
		return models.Admin{}, false, err
	}
	return created, true, nil
}
