// internal/app/features/admin/admins.go
package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	adminstore "github.com/capstonehub/capstonehub/internal/app/store/admins"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeAdmins handles GET /admin/admins.
func (h *Handler) ServeAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.Admins.List(r.Context())
	if err != nil {
		h.Log.Error("list admins failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load admins")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "admins": admins})
}

// HandleCreateAdmin handles POST /admin/admins. New accounts are always
// plain admins; the superadmin flag is only set at bootstrap.
func (h *Handler) HandleCreateAdmin(w http.ResponseWriter, r *http.Request) {
	var p createAdminPayload
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
		h.Log.Error("hash password failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create admin")
		return
	}

	a, err := h.Admins.Create(r.Context(), models.Admin{
		FullName:        p.FullName,
		Email:           normalize.Email(p.Email),
		PasswordHash:    string(hash),
		WritePermission: p.WritePermission,
	})
	if errors.Is(err, adminstore.ErrDuplicateEmail) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("create admin failed", zap.String("email", p.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create admin")
		return
	}
	httpjson.JSON(w, http.StatusCreated, map[string]any{"success": true, "admin": a})
}

// HandleSetAdminPermissions handles PUT /admin/admins/{id}/permissions.
// Superadmin accounts cannot be modified here.
func (h *Handler) HandleSetAdminPermissions(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid admin id")
		return
	}

	var p adminPermissionsPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err = h.Admins.SetPermissions(r.Context(), id, p.WritePermission)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "admin not found or is a superadmin")
		return
	}
	if err != nil {
		h.Log.Error("set admin permissions failed", zap.String("admin_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update admin")
		return
	}
	httpjson.Message(w, http.StatusOK, "admin permissions updated")
}

// HandleDeleteAdmin handles DELETE /admin/admins/{id}. Self-deletion and
// superadmin deletion are refused.
func (h *Handler) HandleDeleteAdmin(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid admin id")
		return
	}
	if id == userID {
		httpjson.Error(w, http.StatusConflict, "cannot delete your own account")
		return
	}

	n, err := h.Admins.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("delete admin failed", zap.String("admin_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete admin")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "admin not found or is a superadmin")
		return
	}
	httpjson.Message(w, http.StatusOK, "admin deleted")
}
