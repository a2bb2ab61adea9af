// internal/app/features/student/requests.go
package student

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

// ServeRequests handles GET /student/requests: the three ledgers with
// supervisor ids resolved to display summaries.
func (h *Handler) ServeRequests(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	st, err := h.Students.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}

	resp := requestsResponse{
		Pending:  h.resolveSupervisors(r.Context(), st.Requests.Pending),
		Received: h.resolveSupervisors(r.Context(), st.Requests.Received),
		Rejected: h.resolveSupervisors(r.Context(), st.Requests.Rejected),
	}
	httpjson.OK(w, resp)
}

// resolveSupervisors maps supervisor ids to summaries, skipping ids that
// no longer resolve (deleted accounts leave dangling ledger entries).
func (h *Handler) resolveSupervisors(ctx context.Context, ids []primitive.ObjectID) []supervisorSummary {
	out := make([]supervisorSummary, 0, len(ids))
	for _, id := range ids {
		sup, err := h.Supervisors.GetByID(ctx, id)
		if err != nil {
			h.Log.Debug("skipping unresolvable supervisor in ledger",
				zap.String("supervisor_id", id.Hex()))
			continue
		}
		out = append(out, supervisorSummary{
			ID:          sup.ID.Hex(),
			FullName:    sup.FullName,
			Designation: sup.Designation,
			Slots:       sup.Slots,
		})
	}
	return out
}

// ServeSupervisors handles GET /student/supervisors: the directory of
// supervisors who can still take a new group, most capacity first.
func (h *Handler) ServeSupervisors(w http.ResponseWriter, r *http.Request) {
	sups, err := h.Supervisors.ListAvailable(r.Context())
	if err != nil {
		h.Log.Error("supervisor directory failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load supervisors")
		return
	}

	out := make([]supervisorSummary, 0, len(sups))
	for _, sup := range sups {
		out = append(out, supervisorSummary{
			ID:          sup.ID.Hex(),
			FullName:    sup.FullName,
			Designation: sup.Designation,
			Slots:       sup.Slots,
		})
	}
	httpjson.OK(w, out)
}

// ServeIdeas handles GET /student/ideas: supervisor-offered project
// ideas that are still open for proposals.
func (h *Handler) ServeIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.Projects.ListIdeas(r.Context())
	if err != nil {
		h.Log.Error("idea listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load ideas")
		return
	}
	httpjson.OK(w, ideas)
}
