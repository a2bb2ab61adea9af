// internal/app/features/admin/extensions.go
package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	extensionstore "github.com/capstonehub/capstonehub/internal/app/store/extensions"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeExtensions handles GET /admin/extensions, the pending review queue.
func (h *Handler) ServeExtensions(w http.ResponseWriter, r *http.Request) {
	extensions, err := h.Extensions.ListPending(r.Context())
	if err != nil {
		h.Log.Error("list pending extensions failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load extension requests")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "extensions": extensions})
}

// HandleDecideExtension handles PUT /admin/extensions/{id}. A decision
// is final; deciding twice returns a conflict. The requesting student is
// notified either way.
func (h *Handler) HandleDecideExtension(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid extension id")
		return
	}

	var p extensionDecisionPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ext, err := h.Extensions.Decide(r.Context(), id, p.Status, userID)
	if errors.Is(err, extensionstore.ErrAlreadyDecided) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "extension request not found")
		return
	}
	if err != nil {
		h.Log.Error("decide extension failed", zap.String("extension_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not decide extension request")
		return
	}

	kind := models.NotifyRejected
	msg := fmt.Sprintf("Your %s deadline extension request was rejected.", ext.Kind)
	if ext.Status == models.ExtensionApproved {
		kind = models.NotifyAccepted
		msg = fmt.Sprintf("Your %s deadline extension was approved until %s.",
			ext.Kind, ext.Until.Format("Mon, 02 Jan 2006 15:04 MST"))
	}
	_ = h.Students.PushNotification(r.Context(),
		[]primitive.ObjectID{ext.StudentID}, notify.New(kind, msg))

	httpjson.OK(w, map[string]any{"success": true, "extension": ext})
}
