// internal/app/features/supervisor/notifications.go
package supervisor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

// ServeNotifications handles GET /supervisor/notifications.
func (h *Handler) ServeNotifications(w http.ResponseWriter, r *http.Request) {
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
	httpjson.OK(w, sup.Notifications)
}

// HandleMarkNotificationSeen handles PUT /supervisor/notifications/{id}/seen.
func (h *Handler) HandleMarkNotificationSeen(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	notifID := chi.URLParam(r, "id")
	err := h.Supervisors.MarkNotificationSeen(r.Context(), userID, notifID)
	if errors.Is(err, notify.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.Log.Error("mark notification seen failed",
			zap.String("notification_id", notifID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update notification")
		return
	}
	httpjson.Message(w, http.StatusOK, "notification marked seen")
}

// HandleRemoveNotification handles DELETE /supervisor/notifications/{id}.
func (h *Handler) HandleRemoveNotification(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	notifID := chi.URLParam(r, "id")
	err := h.Supervisors.RemoveNotification(r.Context(), userID, notifID)
	if errors.Is(err, notify.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.Log.Error("remove notification failed",
			zap.String("notification_id", notifID), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not remove notification")
		return
	}
	httpjson.Message(w, http.StatusOK, "notification removed")
}
