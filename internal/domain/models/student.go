// internal/domain/models/student.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RequestLedger tracks a student's outstanding and historical supervisor
// negotiations. Each list holds supervisor ObjectIDs.
//
//   - Pending: proposals/join requests awaiting a decision (at most 2)
//   - Received: invitations the student has received
//   - Rejected: supervisors who rejected this student; a rejected
//     supervisor can never be proposed to again
type RequestLedger struct {
	Pending  []primitive.ObjectID `bson:"pending" json:"pending"`
	Received []primitive.ObjectID `bson:"received" json:"received"`
	Rejected []primitive.ObjectID `bson:"rejected" json:"rejected"`
}

// Student is a final-year student account.
//
// Invariant: IsGroupMember == true iff GroupID != nil, and a grouped
// student has empty Pending and Received ledgers.
type Student struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName     string              `bson:"full_name" json:"full_name"`
	FullNameCI   string              `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string              `bson:"email" json:"email"`
	RollNo       string              `bson:"roll_no" json:"roll_no"`
	PasswordHash string              `bson:"password_hash" json:"-"`
	Status       string              `bson:"status" json:"status"`
	IsGroupMember bool               `bson:"is_group_member" json:"is_group_member"`
	GroupID      *primitive.ObjectID `bson:"group_id,omitempty" json:"group_id,omitempty"`

	Requests      RequestLedger   `bson:"requests" json:"requests"`
	Notifications NotificationBox `bson:"notifications" json:"notifications"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
