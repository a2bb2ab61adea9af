// Package notify implements the embedded notification box shared by the
// student and supervisor collections. Notifications live inside the user
// document, addressed by their UUID.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ErrNotFound reports that no notification with the given id exists on
// the user document.
var ErrNotFound = errors.New("notification not found")

// New builds a notification with a fresh UUID and timestamp.
func New(kind, message string) models.Notification {
	return models.Notification{
		ID:        uuid.New().String(),
		Type:      kind,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}
}

// Push appends a notification to the unseen list of every listed user.
func Push(ctx context.Context, c *mongo.Collection, userIDs []primitive.ObjectID, n models.Notification) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": userIDs}},
		bson.M{"$push": bson.M{"notifications.unseen": n}})
	return err
}

// MarkSeen moves one notification from unseen to the end of seen. The
// read fetches the notification body; the write's filter re-proves the
// id is still unseen, so of two concurrent marks only one matches and
// exactly one seen entry is pushed.
func MarkSeen(ctx context.Context, c *mongo.Collection, userID primitive.ObjectID, notifID string) error {
	var doc struct {
		Notifications models.NotificationBox `bson:"notifications"`
	}
	err := c.FindOne(ctx,
		bson.M{"_id": userID, "notifications.unseen.id": notifID},
	).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	var moved *models.Notification
	for i := range doc.Notifications.Unseen {
		if doc.Notifications.Unseen[i].ID == notifID {
			moved = &doc.Notifications.Unseen[i]
			break
		}
	}
	if moved == nil {
		return ErrNotFound
	}

	res, err := c.UpdateOne(ctx,
		bson.M{"_id": userID, "notifications.unseen.id": notifID},
		bson.M{
			"$pull": bson.M{"notifications.unseen": bson.M{"id": notifID}},
			"$push": bson.M{"notifications.seen": *moved},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove deletes a notification from either list by its id.
func Remove(ctx context.Context, c *mongo.Collection, userID primitive.ObjectID, notifID string) error {
	res, err := c.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{
			"notifications.unseen": bson.M{"id": notifID},
			"notifications.seen":   bson.M{"id": notifID},
		},
	})
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		return ErrNotFound
	}
	return nil
}
