// internal/app/features/student/types.go
package student

import (
	"time"

	"github.com/capstonehub/capstonehub/internal/domain/models"
)

type updateProfilePayload struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

type proposalPayload struct {
	Title        string `json:"title" validate:"required,min=5,max=200"`
	Description  string `json:"description" validate:"required,min=20,max=5000"`
	Scope        string `json:"scope" validate:"required,min=10,max=2000"`
	SupervisorID string `json:"supervisor_id" validate:"required,len=24,hexadecimal"`
}

type extensionPayload struct {
	Kind   string    `json:"kind" validate:"required,oneof=proposal documentation project"`
	Reason string    `json:"reason" validate:"required,min=10,max=2000"`
	Until  time.Time `json:"until" validate:"required"`
}

// supervisorSummary is how supervisors appear in student-facing lists:
// enough to pick one, nothing private.
type supervisorSummary struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Designation string `json:"designation"`
	Slots       int    `json:"slots"`
}

type requestsResponse struct {
	Pending  []supervisorSummary `json:"pending"`
	Received []supervisorSummary `json:"received"`
	Rejected []supervisorSummary `json:"rejected"`
}

type groupResponse struct {
	Group     models.Group      `json:"group"`
	Members   []memberSummary   `json:"members"`
	Deadlines []models.Deadline `json:"deadlines"`
	Viva      *models.Viva      `json:"viva,omitempty"`
}

type memberSummary struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	RollNo   string `json:"roll_no"`
}
