// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxGroupStudents caps how many students a group can hold.
const MaxGroupStudents = 3

// SubmissionRecord tracks one deliverable upload for a group.
type SubmissionRecord struct {
	Submitted    bool                `bson:"submitted" json:"submitted"`
	SubmittedAt  *time.Time          `bson:"submitted_at,omitempty" json:"submitted_at,omitempty"`
	SubmittedBy  *primitive.ObjectID `bson:"submitted_by,omitempty" json:"submitted_by,omitempty"`
	DocumentLink string              `bson:"document_link,omitempty" json:"document_link,omitempty"`
	WebLink      string              `bson:"web_link,omitempty" json:"web_link,omitempty"`
}

// Submissions holds the three deliverables every group owes.
type Submissions struct {
	Proposal      SubmissionRecord `bson:"proposal" json:"proposal"`
	Documentation SubmissionRecord `bson:"documentation" json:"documentation"`
	Project       SubmissionRecord `bson:"project" json:"project"`
}

// GroupDoc is a working document a group shares with its supervisor for
// review. Review holds the supervisor's feedback.
type GroupDoc struct {
	ID      string `bson:"id" json:"id"`
	DocLink string `bson:"doc_link" json:"doc_link"`
	WebLink string `bson:"web_link,omitempty" json:"web_link,omitempty"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`
	Review  string `bson:"review,omitempty" json:"review,omitempty"`
}

// Marks holds the assessment for each deliverable plus the viva.
type Marks struct {
	Proposal      int `bson:"proposal" json:"proposal"`
	Documentation int `bson:"documentation" json:"documentation"`
	Project       int `bson:"project" json:"project"`
	Viva          int `bson:"viva" json:"viva"`
}

// Group is the persistent unit of 1–3 students assigned to a supervisor
// for one project. A group is created lazily: the first accepted request
// for a (title, supervisor) pair creates it, and later accepted requests
// for the same project append students up to MaxGroupStudents.
//
// Groups are never deleted.
type Group struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	TitleCI      string               `bson:"title_ci" json:"-"`
	Description  string               `bson:"description" json:"description"`
	Scope        string               `bson:"scope" json:"scope"`
	SupervisorID primitive.ObjectID   `bson:"supervisor_id" json:"supervisor_id"`
	ProjectID    primitive.ObjectID   `bson:"project_id" json:"project_id"`
	StudentIDs   []primitive.ObjectID `bson:"student_ids" json:"student_ids"`

	Marks       Marks       `bson:"marks" json:"marks"`
	Submissions Submissions `bson:"submissions" json:"submissions"`
	Docs        []GroupDoc  `bson:"docs" json:"docs"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
