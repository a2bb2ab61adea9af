// internal/domain/models/viva.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Viva statuses.
const (
	VivaScheduled = "scheduled"
	VivaCompleted = "completed"
	VivaCancelled = "cancelled"
)

// Viva is a scheduled oral examination for one group, conducted by an
// external examiner.
type Viva struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"group_id"`
	ExternalID  primitive.ObjectID `bson:"external_id" json:"external_id"`
	ScheduledAt time.Time          `bson:"scheduled_at" json:"scheduled_at"`
	Venue       string             `bson:"venue" json:"venue"`
	Status      string             `bson:"status" json:"status"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
