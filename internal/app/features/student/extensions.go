// internal/app/features/student/extensions.go
package student

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	extensionstore "github.com/capstonehub/capstonehub/internal/app/store/extensions"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/htmlsanitize"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleRequestExtension handles POST /student/extensions. Only grouped
// students can ask; the request belongs to the whole group, so one
// pending request per deliverable kind is enforced by the store.
func (h *Handler) HandleRequestExtension(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var p extensionPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := h.Groups.GetByStudent(r.Context(), userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusConflict, "you must belong to a group to request an extension")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "extension request failed")
		return
	}

	created, err := h.Extensions.Create(r.Context(), models.Extension{
		GroupID:   g.ID,
		StudentID: userID,
		Kind:      p.Kind,
		Reason:    htmlsanitize.Strip(p.Reason),
		Until:     p.Until.UTC(),
	})
	if err == extensionstore.ErrAlreadyPending {
		httpjson.Error(w, http.StatusConflict, "your group already has a pending extension request for this deliverable")
		return
	}
	if err != nil {
		h.Log.Error("extension request failed",
			zap.String("group_id", g.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "extension request failed")
		return
	}

	httpjson.JSON(w, http.StatusCreated, created)
}

// ServeExtensions handles GET /student/extensions: the requests made for
// the caller's group, newest first.
func (h *Handler) ServeExtensions(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	g, err := h.Groups.GetByStudent(r.Context(), userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.OK(w, []models.Extension{})
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not load extensions")
		return
	}

	list, err := h.Extensions.ListByGroup(r.Context(), g.ID)
	if err != nil {
		h.Log.Error("extension listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load extensions")
		return
	}
	httpjson.OK(w, list)
}
