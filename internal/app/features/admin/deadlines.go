// internal/app/features/admin/deadlines.go
package admin

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeDeadlines handles GET /admin/deadlines.
func (h *Handler) ServeDeadlines(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.Deadlines.List(r.Context())
	if err != nil {
		h.Log.Error("list deadlines failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load deadlines")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "deadlines": deadlines})
}

// HandleSetDeadline handles PUT /admin/deadlines/{kind}. Setting a kind
// that already has a deadline replaces it.
func (h *Handler) HandleSetDeadline(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	kind := chi.URLParam(r, "kind")
	if !models.ValidDeadlineKind(kind) {
		httpjson.Error(w, http.StatusBadRequest, "deadline kind must be proposal, documentation, or project")
		return
	}

	var p deadlinePayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Due.Before(time.Now().UTC()) {
		httpjson.Error(w, http.StatusBadRequest, "deadline must be in the future")
		return
	}

	d, err := h.Deadlines.Set(r.Context(), kind, p.Due, userID)
	if err != nil {
		h.Log.Error("set deadline failed", zap.String("kind", kind), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not set deadline")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "deadline": d})
}

// HandleDeleteDeadline handles DELETE /admin/deadlines/{kind}.
func (h *Handler) HandleDeleteDeadline(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	if !models.ValidDeadlineKind(kind) {
		httpjson.Error(w, http.StatusBadRequest, "deadline kind must be proposal, documentation, or project")
		return
	}

	n, err := h.Deadlines.Delete(r.Context(), kind)
	if err != nil {
		h.Log.Error("delete deadline failed", zap.String("kind", kind), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete deadline")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "no deadline set for this kind")
		return
	}
	httpjson.Message(w, http.StatusOK, "deadline removed")
}
