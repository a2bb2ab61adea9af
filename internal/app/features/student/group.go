// internal/app/features/student/group.go
package student

import (
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

// ServeGroup handles GET /student/group: the caller's group with
// members, deadlines and the viva, if one is scheduled.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	g, err := h.Groups.GetByStudent(r.Context(), userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "you do not belong to a group yet")
		return
	}
	if err != nil {
		h.Log.Error("group lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}

	members, err := h.Students.ListByGroup(r.Context(), g.ID)
	if err != nil {
		h.Log.Error("group member lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}
	summaries := make([]memberSummary, 0, len(members))
	for _, m := range members {
		summaries = append(summaries, memberSummary{
			ID:       m.ID.Hex(),
			FullName: m.FullName,
			RollNo:   m.RollNo,
		})
	}

	deadlines, err := h.Deadlines.List(r.Context())
	if err != nil {
		h.Log.Error("deadline listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load group")
		return
	}

	resp := groupResponse{Group: g, Members: summaries, Deadlines: deadlines}
	if v, err := h.Vivas.GetByGroup(r.Context(), g.ID); err == nil {
		resp.Viva = &v
	}

	httpjson.OK(w, resp)
}

// ServeDeadlines handles GET /student/deadlines.
func (h *Handler) ServeDeadlines(w http.ResponseWriter, r *http.Request) {
	deadlines, err := h.Deadlines.List(r.Context())
	if err != nil {
		h.Log.Error("deadline listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load deadlines")
		return
	}
	httpjson.OK(w, deadlines)
}

// ServeViva handles GET /student/vivas: the viva scheduled for the
// caller's group.
func (h *Handler) ServeViva(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	g, err := h.Groups.GetByStudent(r.Context(), userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "you do not belong to a group yet")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "could not load viva")
		return
	}

	v, err := h.Vivas.GetByGroup(r.Context(), g.ID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "no viva scheduled for your group")
		return
	}
	if err != nil {
		h.Log.Error("viva lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load viva")
		return
	}
	httpjson.OK(w, v)
}
