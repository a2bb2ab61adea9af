// internal/domain/models/extension.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Extension statuses.
const (
	ExtensionPending  = "pending"
	ExtensionApproved = "approved"
	ExtensionRejected = "rejected"
)

// Extension is a student's request to push a deliverable deadline for
// their group. An approved extension lets the group submit past the
// portal-wide deadline.
type Extension struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	GroupID   primitive.ObjectID  `bson:"group_id" json:"group_id"`
	StudentID primitive.ObjectID  `bson:"student_id" json:"student_id"`
	Kind      string              `bson:"kind" json:"kind"` // deadline kind being extended
	Reason    string              `bson:"reason" json:"reason"`
	Until     time.Time           `bson:"until" json:"until"`
	Status    string              `bson:"status" json:"status"`
	DecidedBy *primitive.ObjectID `bson:"decided_by,omitempty" json:"decided_by,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
