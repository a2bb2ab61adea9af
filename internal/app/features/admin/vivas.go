// internal/app/features/admin/vivas.go
package admin

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	vivastore "github.com/capstonehub/capstonehub/internal/app/store/vivas"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeVivas handles GET /admin/vivas.
func (h *Handler) ServeVivas(w http.ResponseWriter, r *http.Request) {
	vivas, err := h.Vivas.List(r.Context())
	if err != nil {
		h.Log.Error("list vivas failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load vivas")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "vivas": vivas})
}

// HandleScheduleViva handles POST /admin/vivas. One viva per group; the
// group's students get a reminder notification.
func (h *Handler) HandleScheduleViva(w http.ResponseWriter, r *http.Request) {
	var p vivaPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	groupID, _ := primitive.ObjectIDFromHex(p.GroupID)
	externalID, _ := primitive.ObjectIDFromHex(p.ExternalID)

	group, err := h.Groups.GetByID(r.Context(), groupID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if _, err := h.Externals.GetByID(r.Context(), externalID); err != nil {
		httpjson.Error(w, http.StatusNotFound, "external examiner not found")
		return
	}

	v, err := h.Vivas.Create(r.Context(), models.Viva{
		GroupID:     groupID,
		ExternalID:  externalID,
		ScheduledAt: p.ScheduledAt,
		Venue:       p.Venue,
	})
	if errors.Is(err, vivastore.ErrAlreadyScheduled) {
		httpjson.Error(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("schedule viva failed", zap.String("group_id", groupID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not schedule viva")
		return
	}

	msg := fmt.Sprintf("Viva for %q scheduled on %s at %s.",
		group.Title, v.ScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"), v.Venue)
	_ = h.Students.PushNotification(r.Context(), group.StudentIDs,
		notify.New(models.NotifyReminder, msg))

	httpjson.JSON(w, http.StatusCreated, map[string]any{"success": true, "viva": v})
}

// HandleRescheduleViva handles PUT /admin/vivas/{id}.
func (h *Handler) HandleRescheduleViva(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid viva id")
		return
	}

	var p reschedulePayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	externalID := primitive.NilObjectID
	if p.ExternalID != "" {
		externalID, _ = primitive.ObjectIDFromHex(p.ExternalID)
		if _, err := h.Externals.GetByID(r.Context(), externalID); err != nil {
			httpjson.Error(w, http.StatusNotFound, "external examiner not found")
			return
		}
	}

	err = h.Vivas.Reschedule(r.Context(), id, p.ScheduledAt, p.Venue, externalID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "viva not found")
		return
	}
	if err != nil {
		h.Log.Error("reschedule viva failed", zap.String("viva_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not reschedule viva")
		return
	}

	if v, getErr := h.Vivas.GetByID(r.Context(), id); getErr == nil {
		if group, groupErr := h.Groups.GetByID(r.Context(), v.GroupID); groupErr == nil {
			msg := fmt.Sprintf("Viva for %q moved to %s at %s.",
				group.Title, v.ScheduledAt.Format("Mon, 02 Jan 2006 15:04 MST"), v.Venue)
			_ = h.Students.PushNotification(r.Context(), group.StudentIDs,
				notify.New(models.NotifyReminder, msg))
		}
	}

	httpjson.Message(w, http.StatusOK, "viva rescheduled")
}

// HandleSetVivaStatus handles PUT /admin/vivas/{id}/status. Completing
// a viva may carry the external examiner's mark, which lands on the
// group's marks sheet.
func (h *Handler) HandleSetVivaStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid viva id")
		return
	}

	var p vivaStatusPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Mark != nil && p.Status != models.VivaCompleted {
		httpjson.Error(w, http.StatusBadRequest, "a viva mark requires the completed status")
		return
	}

	v, err := h.Vivas.GetByID(r.Context(), id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "viva not found")
		return
	}
	if err != nil {
		h.Log.Error("viva lookup failed", zap.String("viva_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update viva")
		return
	}

	if err := h.Vivas.SetStatus(r.Context(), id, p.Status); err != nil {
		h.Log.Error("set viva status failed", zap.String("viva_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not update viva")
		return
	}

	if p.Mark != nil {
		if err := h.Groups.SetVivaMark(r.Context(), v.GroupID, *p.Mark); err != nil {
			h.Log.Error("set viva mark failed",
				zap.String("viva_id", id.Hex()),
				zap.String("group_id", v.GroupID.Hex()),
				zap.Error(err))
			httpjson.Error(w, http.StatusInternalServerError, "could not record viva mark")
			return
		}
	}

	httpjson.Message(w, http.StatusOK, "viva status updated")
}

// HandleDeleteViva handles DELETE /admin/vivas/{id}.
func (h *Handler) HandleDeleteViva(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid viva id")
		return
	}

	n, err := h.Vivas.Delete(r.Context(), id)
	if err != nil {
		h.Log.Error("delete viva failed", zap.String("viva_id", id.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete viva")
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "viva not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "viva deleted")
}
