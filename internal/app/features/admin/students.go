// internal/app/features/admin/students.go
package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeStudents handles GET /admin/students. ?ungrouped=true narrows the
// list to students still eligible for group formation.
func (h *Handler) ServeStudents(w http.ResponseWriter, r *http.Request) {
	var (
		students []models.Student
		err      error
	)
	if r.URL.Query().Get("ungrouped") == "true" {
		students, err = h.Students.ListUngrouped(r.Context())
	} else {
		students, err = h.Students.List(r.Context())
	}
	if err != nil {
		h.Log.Error("list students failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load students")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "students": students})
}

// HandleCreateStudent handles POST /admin/students. When no password is
// supplied a temporary one is generated and echoed back once.
func (h *Handler) HandleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var p createStudentPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	tempPassword := ""
	password := p.Password
	if password == "" {
		tempPassword = uuid.NewString()
		password = tempPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		h.Log.Error("hash password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create student")
		return
	}

	st, err := h.Students.Create(r.Context(), models.Student{
		FullName:     p.FullName,
		Email:        normalize.Email(p.Email),
		RollNo:       normalize.RollNo(p.RollNo),
		PasswordHash: string(hash),
	})
	if errors.Is(err, studentstore.ErrDuplicateEmail) || errors.Is(err, studentstore.ErrDuplicateRollNo) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("create student failed", zap.String("email", p.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create student")
		return
	}

	resp := map[string]any{"success": true, "student": st}
	if tempPassword != "" {
		resp["temp_password"] = tempPassword
	}
	httpjson.JSON(w, http.StatusCreated, resp)
}

// HandleUpdateStudent handles PUT /admin/students/{id}.
func (h *Handler) HandleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}

	var p updateStudentPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Students.GetByID(r.Context(), id); err != nil {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}

	if p.FullName != "" {
		if err := h.Students.UpdateProfile(r.Context(), id, p.FullName); err != nil {
			h.Log.Error("update student failed", zap.String("student_id", id.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update student")
			return
		}
	}
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), BcryptCost)
		if err != nil {
			h.Log.Error("hash password failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update student")
			return
		}
		if err := h.Students.UpdatePassword(r.Context(), id, string(hash)); err != nil {
			h.Log.Error("update student password failed", zap.String("student_id", id.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update student")
			return
		}
	}

	httpjson.Message(w, http.StatusOK, "student updated")
}

// HandleDeleteStudent handles DELETE /admin/students/{id}.
func (h *Handler) HandleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}

	n, err := h.Students.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("delete student failed", zap.String("student_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete student")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "student deleted")
}
