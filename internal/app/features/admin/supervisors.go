// internal/app/features/admin/supervisors.go
package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeSupervisors handles GET /admin/supervisors.
func (h *Handler) ServeSupervisors(w http.ResponseWriter, r *http.Request) {
	supervisors, err := h.Supervisors.List(r.Context())
	if err != nil {
		h.Log.Error("list supervisors failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load supervisors")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "supervisors": supervisors})
}

// HandleCreateSupervisor handles POST /admin/supervisors.
func (h *Handler) HandleCreateSupervisor(w http.ResponseWriter, r *http.Request) {
	var p createSupervisorPayload
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
		httpjson.Error(w, http.StatusInternalServerError, "could not create supervisor")
		return
	}

	sv, err := h.Supervisors.Create(r.Context(), models.Supervisor{
		FullName:     p.FullName,
		Email:        normalize.Email(p.Email),
		Designation:  p.Designation,
		Slots:        p.Slots,
		PasswordHash: string(hash),
	})
	if errors.Is(err, supervisorstore.ErrDuplicateEmail) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("create supervisor failed", zap.String("email", p.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create supervisor")
		return
	}

	resp := map[string]any{"success": true, "supervisor": sv}
	if tempPassword != "" {
		resp["temp_password"] = tempPassword
	}
	httpjson.JSON(w, http.StatusCreated, resp)
}

// HandleUpdateSupervisor handles PUT /admin/supervisors/{id}. Slots may
// be raised or lowered; in-flight accepted groups are not affected.
func (h *Handler) HandleUpdateSupervisor(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid supervisor id")
		return
	}

	var p updateSupervisorPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Supervisors.GetByID(r.Context(), id); err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}

	if p.FullName != "" || p.Designation != "" {
		if err := h.Supervisors.UpdateProfile(r.Context(), id, p.FullName, p.Designation); err != nil {
			h.Log.Error("update supervisor failed", zap.String("supervisor_id", id.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update supervisor")
			return
		}
	}
	if p.Slots != nil {
		if err := h.Supervisors.SetSlots(r.Context(), id, *p.Slots); err != nil {
			h.Log.Error("set supervisor slots failed", zap.String("supervisor_id", id.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update supervisor")
			return
		}
	}
	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), BcryptCost)
		if err != nil {
			h.Log.Error("hash password failed", zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update supervisor")
			return
		}
		if err := h.Supervisors.UpdatePassword(r.Context(), id, string(hash)); err != nil {
			h.Log.Error("update supervisor password failed", zap.String("supervisor_id", id.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not update supervisor")
			return
		}
	}

	httpjson.Message(w, http.StatusOK, "supervisor updated")
}

// HandleDeleteSupervisor handles DELETE /admin/supervisors/{id}.
func (h *Handler) HandleDeleteSupervisor(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid supervisor id")
		return
	}

	sv, err := h.Supervisors.GetByID(r.Context(), id)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}
	if len(sv.GroupIDs) > 0 {
		httpjson.Error(w, http.StatusConflict, "supervisor still has active groups")
		return
	}

	n, err := h.Supervisors.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("delete supervisor failed", zap.String("supervisor_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete supervisor")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "supervisor deleted")
}
