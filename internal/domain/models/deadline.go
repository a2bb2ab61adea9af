// internal/domain/models/deadline.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Deadline kinds, one per deliverable. Exactly one deadline document
// exists per kind (unique index); setting a kind again replaces it.
const (
	DeadlineProposal      = "proposal"
	DeadlineDocumentation = "documentation"
	DeadlineProject       = "project"
)

// ValidDeadlineKind reports whether kind names a known deliverable.
func ValidDeadlineKind(kind string) bool {
	switch kind {
	case DeadlineProposal, DeadlineDocumentation, DeadlineProject:
		return true
	}
	return false
}

// Deadline is a portal-wide due date for one deliverable kind.
type Deadline struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Kind  string             `bson:"kind" json:"kind"`
	Due   time.Time          `bson:"due" json:"due"`
	SetBy primitive.ObjectID `bson:"set_by" json:"set_by"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
