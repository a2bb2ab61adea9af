// internal/app/features/admin/types.go
package admin

import "time"

type createStudentPayload struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	RollNo   string `json:"roll_no" validate:"required,min=2,max=40"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

type updateStudentPayload struct {
	FullName string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

type createSupervisorPayload struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Designation string `json:"designation" validate:"required,min=2,max=120"`
	Slots       int    `json:"slots" validate:"gte=0,lte=50"`
	Password    string `json:"password" validate:"omitempty,min=8,max=72"`
}

type updateSupervisorPayload struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Designation string `json:"designation" validate:"omitempty,min=2,max=120"`
	Slots       *int   `json:"slots" validate:"omitempty,gte=0,lte=50"`
	Password    string `json:"password" validate:"omitempty,min=8,max=72"`
}

type createAdminPayload struct {
	FullName        string `json:"full_name" validate:"required,min=2,max=120"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8,max=72"`
	WritePermission bool   `json:"write_permission"`
}

type adminPermissionsPayload struct {
	WritePermission bool `json:"write_permission"`
}

type externalPayload struct {
	FullName    string `json:"full_name" validate:"required,min=2,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Affiliation string `json:"affiliation" validate:"required,min=2,max=200"`
}

type updateExternalPayload struct {
	FullName    string `json:"full_name" validate:"omitempty,min=2,max=120"`
	Affiliation string `json:"affiliation" validate:"omitempty,min=2,max=200"`
}

type deadlinePayload struct {
	Due time.Time `json:"due" validate:"required"`
}

type vivaPayload struct {
	GroupID     string    `json:"group_id" validate:"required,len=24,hexadecimal"`
	ExternalID  string    `json:"external_id" validate:"required,len=24,hexadecimal"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Venue       string    `json:"venue" validate:"required,min=2,max=200"`
}

type reschedulePayload struct {
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Venue       string    `json:"venue" validate:"omitempty,min=2,max=200"`
	ExternalID  string    `json:"external_id" validate:"omitempty,len=24,hexadecimal"`
}

type vivaStatusPayload struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
	Mark   *int   `json:"mark" validate:"omitempty,gte=0,lte=100"`
}

type extensionDecisionPayload struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// importResponse is shared by both CSV import endpoints.
type importResponse struct {
	Success  bool       `json:"success"`
	Imported int        `json:"imported"`
	Errors   []rowError `json:"errors"`
}

type rowError struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}
