// internal/domain/models/supervisor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProjectRequest is one entry in a supervisor's inbox: a student asking
// the supervisor to take on a project.
type ProjectRequest struct {
	ProjectID  primitive.ObjectID `bson:"project_id" json:"project_id"`
	StudentID  primitive.ObjectID `bson:"student_id" json:"student_id"`
	IsAccepted bool               `bson:"is_accepted" json:"is_accepted"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// Supervisor is a faculty member who takes on project groups.
//
// Slots is the remaining capacity to accept one new group. It only
// decreases, and decreases exactly once per brand-new group created for
// this supervisor; appending a student to an existing group does not
// consume a slot. Slots are never released.
type Supervisor struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"`
	Email        string             `bson:"email" json:"email"`
	Designation  string             `bson:"designation" json:"designation"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Status       string             `bson:"status" json:"status"`

	Slots           int                  `bson:"slots" json:"slots"`
	GroupIDs        []primitive.ObjectID `bson:"group_ids" json:"group_ids"`
	ProjectRequests []ProjectRequest     `bson:"project_requests" json:"project_requests"`
	Notifications   NotificationBox      `bson:"notifications" json:"notifications"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
