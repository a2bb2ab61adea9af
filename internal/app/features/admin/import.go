// internal/app/features/admin/import.go
package admin

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/capstonehub/capstonehub/internal/app/features/admin/csvimport"
	studentstore "github.com/capstonehub/capstonehub/internal/app/store/students"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleImportStudents handles POST /admin/students/import. The CSV
// arrives as a multipart "file" field. Rows that fail validation or
// collide with existing accounts are reported with their line numbers;
// the rest import.
func (h *Handler) HandleImportStudents(w http.ResponseWriter, r *http.Request) {
	file, ok := openImportFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	parsed, err := csvimport.ParseStudents(file, limits.MaxImportRows)
	if errors.Is(err, csvimport.ErrTooManyRows) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "could not parse csv file")
		return
	}

	resp := importResponse{Success: true, Errors: rowErrors(parsed.Errors)}
	for _, row := range parsed.Students {
		password := row.TempPassword
		if password == "" {
			password = uuid.NewString()
		}
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
		if hashErr != nil {
			h.Log.Error("hash password failed", zap.Error(hashErr))
			resp.Errors = append(resp.Errors, rowError{Line: row.Line, Reason: "could not hash password"})
			continue
		}

		_, createErr := h.Students.Create(r.Context(), models.Student{
			FullName:     row.FullName,
			Email:        row.Email,
			RollNo:       row.RollNo,
			PasswordHash: string(hash),
		})
		switch {
		case errors.Is(createErr, studentstore.ErrDuplicateEmail),
			errors.Is(createErr, studentstore.ErrDuplicateRollNo):
			resp.Errors = append(resp.Errors, rowError{Line: row.Line, Reason: createErr.Error()})
		case createErr != nil:
			h.Log.Error("import student failed", zap.String("email", row.Email), zap.Error(createErr))
			resp.Errors = append(resp.Errors, rowError{Line: row.Line, Reason: "could not create account"})
		default:
			resp.Imported++
		}
	}

	h.Log.Info("student import finished",
		zap.Int("imported", resp.Imported), zap.Int("errors", len(resp.Errors)))
	httpjson.OK(w, resp)
}

// HandleImportSupervisors handles POST /admin/supervisors/import.
func (h *Handler) HandleImportSupervisors(w http.ResponseWriter, r *http.Request) {
	file, ok := openImportFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	parsed, err := csvimport.ParseSupervisors(file, limits.MaxImportRows)
	if errors.Is(err, csvimport.ErrTooManyRows) {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "could not parse csv file")
		return
	}

	resp := importResponse{Success: true, Errors: rowErrors(parsed.Errors)}
	for _, row := range parsed.Supervisors {
		password := row.TempPassword
		if password == "" {
			password = uuid.NewString()
		}
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
		if hashErr != nil {
			h.Log.Error("hash password failed", zap.Error(hashErr))
			resp.Errors = append(resp.Errors, rowError{Line: row.Line, Reason: "could not hash password"})
			continue
		}

		_, createErr := h.Supervisors.Create(r.Context(), models.Supervisor{
			FullName:     row.FullName,
			Email:        row.Email,
			Designation:  row.Designation,
			Slots:        row.Slots,
			PasswordHash: string(hash),
		})
		switch {
		case errors.Is(createErr, supervisorstore.ErrDuplicateEmail):
			resp.Errors = append(resp.Errors, rowError{Line: row.Line, Reason: createErr.Error()})
		case createErr != nil:
			h.Log.Error("import supervisor failed", zap.String("email", row.Email), zap.Error(createErr))
			resp.Errors = append(resp.Errors, rowError{Line: row.Line, Reason: "could not create account"})
		default:
			resp.Imported++
		}
	}

	h.Log.Info("supervisor import finished",
		zap.Int("imported", resp.Imported), zap.Int("errors", len(resp.Errors)))
	httpjson.OK(w, resp)
}

// openImportFile pulls the "file" multipart field, writing the error
// response itself when the upload is missing or oversized.
func openImportFile(w http.ResponseWriter, r *http.Request) (multipart.File, bool) {
	if err := r.ParseMultipartForm(limits.MaxCSVUpload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "upload must be multipart form data under the size limit")
		return nil, false
	}
	f, _, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "csv upload must be sent in the \"file\" field")
		return nil, false
	}
	return f, true
}

func rowErrors(in []csvimport.RowError) []rowError {
	out := make([]rowError, 0, len(in))
	for _, e := range in {
		out = append(out, rowError{Line: e.Line, Reason: e.Reason})
	}
	return out
}
