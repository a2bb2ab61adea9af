// internal/app/features/authn/types.go
package authn

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student supervisor admin"`
}

type registerPayload struct {
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	RollNo   string `json:"roll_no" validate:"required,min=2,max=30"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// identityResponse is what login, register and me return: enough for the
// SPA to render the signed-in shell without another round trip.
type identityResponse struct {
	Success         bool   `json:"success"`
	ID              string `json:"id"`
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	SuperAdmin      bool   `json:"super_admin,omitempty"`
	WritePermission bool   `json:"write_permission,omitempty"`
}
