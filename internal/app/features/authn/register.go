// internal/app/features/authn/register.go
package authn

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	"github.com/capstonehub/capstonehub/internal/app/system/auth"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleRegister handles POST /auth/register: student self-registration.
// Supervisor and admin accounts are created by administrators only.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var p registerPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), BcryptCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	created, err := h.Students.Create(r.Context(), models.Student{
		FullName:     normalize.Name(p.FullName),
		Email:        normalize.Email(p.Email),
		RollNo:       normalize.RollNo(p.RollNo),
		PasswordHash: string(hash),
	})
	switch err {
	case nil:
	case studentstore.ErrDuplicateEmail:
		httpjson.Error(w, http.StatusConflict, "an account with this email already exists")
		return
	case studentstore.ErrDuplicateRollNo:
		httpjson.Error(w, http.StatusConflict, "an account with this roll number already exists")
		return
	default:
		h.Log.Error("student registration failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "registration failed")
		return
	}

	h.Log.Info("student registered",
		zap.String("student_id", created.ID.Hex()),
		zap.String("roll_no", created.RollNo))

	httpjson.JSON(w, http.StatusCreated, identityResponse{
		Success:  true,
		ID:       created.ID.Hex(),
		FullName: created.FullName,
		Email:    created.Email,
		Role:     auth.RoleStudent,
	})
}
