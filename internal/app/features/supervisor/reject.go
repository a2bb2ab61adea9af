// internal/app/features/supervisor/reject.go
package supervisor

import (
	"context"
	"fmt"
	"net/http"

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

// HandleReject handles POST /supervisor/requests/{projectID}/reject.
//
// Rejection is permanent: the supervisor lands on the student's rejected
// list and can never be proposed to again. A pending proposal project is
// deleted with the request; an accepted project referenced by a join
// request is left alone.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	_, supName, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectID"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	sup, err := h.Supervisors.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}
	req := proposalpolicy.FindRequest(&sup, projectID)
	if req == nil {
		httpjson.Error(w, http.StatusNotFound, "request not found")
		return
	}
	if req.IsAccepted {
		httpjson.Error(w, http.StatusConflict, "request already accepted")
		return
	}

	project, projErr := h.Projects.GetByID(r.Context(), projectID)
	studentID := req.StudentID

	err = txn.WithTransaction(r.Context(), h.DB.Client(), h.Log, func(ctx context.Context) error {
		if projErr == nil && project.Status == models.ProjectPending {
			if _, delErr := h.Projects.Delete(ctx, project.ID); delErr != nil {
				return delErr
			}
		}
		if remErr := h.Supervisors.RemoveRequest(ctx, sup.ID, projectID); remErr != nil {
			return remErr
		}
		return h.Students.AddRejected(ctx, studentID, sup.ID)
	})
	if err != nil {
		h.Log.Error("reject failed",
			zap.String("project_id", projectID.Hex()),
			zap.String("supervisor_id", sup.ID.Hex()),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "reject failed")
		return
	}

	title := "your request"
	if projErr == nil {
		title = fmt.Sprintf("%q", project.Title)
	}
	_ = h.Students.PushNotification(r.Context(), []primitive.ObjectID{studentID},
		notify.New(models.NotifyRejected,
			fmt.Sprintf("%s rejected %s.", supName, title)))

	h.Log.Info("request rejected",
		zap.String("project_id", projectID.Hex()),
		zap.String("student_id", studentID.Hex()))

	httpjson.Message(w, http.StatusOK, "request rejected")
}
