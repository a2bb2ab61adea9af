// internal/app/features/supervisor/types.go
package supervisor

import "github.com/capstonehub/capstonehub/internal/domain/models"

type updateProfilePayload struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=100"`
	Designation string `json:"designation" validate:"required,min=2,max=100"`
	Password    string `json:"password" validate:"omitempty,min=8,max=72"`
}

type ideaPayload struct {
	Title       string `json:"title" validate:"required,min=5,max=200"`
	Description string `json:"description" validate:"required,min=20,max=5000"`
	Scope       string `json:"scope" validate:"required,min=10,max=2000"`
}

type marksPayload struct {
	Proposal      int `json:"proposal" validate:"min=0,max=100"`
	Documentation int `json:"documentation" validate:"min=0,max=100"`
	Project       int `json:"project" validate:"min=0,max=100"`
	Viva          int `json:"viva" validate:"min=0,max=100"`
}

type reviewPayload struct {
	Review string `json:"review" validate:"required,min=1,max=5000"`
}

// inboxEntry is one pending request resolved for display.
type inboxEntry struct {
	Project models.Project `json:"project"`
	Student struct {
		ID       string `json:"id"`
		FullName string `json:"full_name"`
		RollNo   string `json:"roll_no"`
		Email    string `json:"email"`
	} `json:"student"`
	CreatedAt string `json:"created_at"`
}

// acceptResponse tells the caller whether the student joined an existing
// group or a new one was created (and a slot consumed).
type acceptResponse struct {
	Success      bool         `json:"success"`
	Message      string       `json:"message"`
	Group        models.Group `json:"group"`
	CreatedGroup bool         `json:"created_group"`
	SlotsLeft    int          `json:"slots_left"`
}
