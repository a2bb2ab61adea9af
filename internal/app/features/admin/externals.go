// internal/app/features/admin/externals.go
package admin

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	externalstore "github.com/capstonehub/capstonehub/internal/app/store/externals"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/normalize"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeExternals handles GET /admin/externals.
func (h *Handler) ServeExternals(w http.ResponseWriter, r *http.Request) {
	externals, err := h.Externals.List(r.Context())
	if err != nil {
		h.Log.Error("list externals failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load external examiners")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "externals": externals})
}

// HandleCreateExternal handles POST /admin/externals.
func (h *Handler) HandleCreateExternal(w http.ResponseWriter, r *http.Request) {
	var p externalPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	e, err := h.Externals.Create(r.Context(), models.External{
		FullName:    p.FullName,
		Email:       normalize.Email(p.Email),
		Affiliation: p.Affiliation,
	})
	if errors.Is(err, externalstore.ErrDuplicateEmail) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("create external failed", zap.String("email", p.Email), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create external examiner")
		return
	}
	httpjson.JSON(w, http.StatusCreated, map[string]any{"success": true, "external": e})
}

// HandleUpdateExternal handles PUT /admin/externals/{id}.
func (h *Handler) HandleUpdateExternal(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid external examiner id")
		return
	}

	var p updateExternalPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	err = h.Externals.Update(r.Context(), id, p.FullName, p.Affiliation)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "external examiner not found")
		return
	}
	if err != nil {
		h.Log.Error("update external failed", zap.String("external_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update external examiner")
		return
	}
	httpjson.Message(w, http.StatusOK, "external examiner updated")
}

// HandleDeleteExternal handles DELETE /admin/externals/{id}.
func (h *Handler) HandleDeleteExternal(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid external examiner id")
		return
	}

	n, err := h.Externals.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("delete external failed", zap.String("external_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete external examiner")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "external examiner not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "external examiner deleted")
}
