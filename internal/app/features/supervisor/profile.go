// internal/app/features/supervisor/profile.go
package supervisor

import (
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
)

// ServeProfile handles GET /supervisor/profile. Slots and group ids come
// back with the record so the dashboard shows remaining capacity.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	sup, err := h.Supervisors.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}
	httpjson.OK(w, sup)
}

// HandleUpdateProfile handles PUT /supervisor/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var p updateProfilePayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Supervisors.UpdateProfile(r.Context(), userID,
		normalize.Name(p.FullName), normalize.Name(p.Designation)); err != nil {
		h.Log.Error("supervisor profile update failed",
			zap.String("supervisor_id", userID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
		return
	}

	if p.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), 12)
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
			return
		}
		if err := h.Supervisors.UpdatePassword(r.Context(), userID, string(hash)); err != nil {
			h.Log.Error("supervisor password update failed",
				zap.String("supervisor_id", userID.Hex()), zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "profile update failed")
			return
		}
	}

	httpjson.Message(w, http.StatusOK, "profile updated")
}
