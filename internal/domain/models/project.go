// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses.
const (
	ProjectPending  = "pending"
	ProjectAccepted = "accepted"
	ProjectRejected = "rejected"
)

// Project is a proposed piece of work. It is created when a student
// submits a proposal (status pending) or offered by a supervisor as an
// idea. Titles are unique across the whole portal (TitleCI carries the
// folded form backing the unique index).
//
// Active marks supervisor-offered ideas that are still open for
// proposals; every idea of a supervisor is deactivated when the
// supervisor's last slot is consumed.
type Project struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title       string              `bson:"title" json:"title"`
	TitleCI     string              `bson:"title_ci" json:"-"`
	Description string              `bson:"description" json:"description"`
	Scope       string              `bson:"scope" json:"scope"`
	StudentIDs  []primitive.ObjectID `bson:"student_ids" json:"student_ids"`
	SupervisorID *primitive.ObjectID `bson:"supervisor_id,omitempty" json:"supervisor_id,omitempty"`
	Status      string              `bson:"status" json:"status"`
	Active      bool                `bson:"active" json:"active"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
