// internal/app/features/student/join.go
package student

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/policy/proposalpolicy"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/txn"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleJoinGroup handles POST /student/groups/{groupID}/join: a request
// to join an existing group, addressed to the group's supervisor. No new
// Project is created; the request references the group's project and
// only becomes membership when the supervisor accepts it.
func (h *Handler) HandleJoinGroup(w http.ResponseWriter, r *http.Request) {
	_, studentName, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return
	}

	g, err := h.Groups.GetByID(r.Context(), groupID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return
	}
	if len(g.StudentIDs) >= models.MaxGroupStudents {
		httpjson.Error(w, http.StatusConflict, "group is full")
		return
	}

	st, err := h.Students.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	sup, err := h.Supervisors.GetByID(r.Context(), g.SupervisorID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}

	// Joining reuses the group's project title, so no title check.
	if err := proposalpolicy.CheckSubmit(r.Context(), h.DB, &st, &sup, ""); err != nil {
		if proposalpolicy.IsDenial(err) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("join precondition check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "join request failed")
		return
	}

	// The pending ledger entry and the inbox entry land together.
	err = txn.WithTransaction(r.Context(), h.DB.Client(), h.Log, func(ctx context.Context) error {
		if err := h.Students.AddPending(ctx, st.ID, sup.ID); err != nil {
			return err
		}
		return h.Supervisors.AddRequest(ctx, sup.ID, models.ProjectRequest{
			ProjectID: g.ProjectID,
			StudentID: st.ID,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err != nil {
		h.Log.Error("join request failed",
			zap.String("group_id", g.ID.Hex()),
			zap.String("student_id", st.ID.Hex()),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "join request failed")
		return
	}

	_ = h.Supervisors.PushNotification(r.Context(), []primitive.ObjectID{sup.ID},
		notify.New(models.NotifyImportant,
			fmt.Sprintf("%s asked to join %q.", studentName, g.Title)))
	_ = h.Students.PushNotification(r.Context(), []primitive.ObjectID{st.ID},
		notify.New(models.NotifyImportant,
			fmt.Sprintf("Your request to join %q was sent to %s.", g.Title, sup.FullName)))

	httpjson.Message(w, http.StatusCreated, "join request sent")
}
