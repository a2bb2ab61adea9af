// internal/app/features/student/propose.go
package student

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/policy/proposalpolicy"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	projectstore "github.com/capstonehub/capstonehub/internal/app/store/projects"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/htmlsanitize"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/app/system/txn"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleSubmitProposal handles POST /student/proposals.
//
// Preconditions run in a fixed order so a student with several problems
// always sees the same first message: grouped, too many pending,
// supervisor unavailable, rejected before, already pending, title taken.
// On success a pending Project is created and both ledgers are updated.
func (h *Handler) HandleSubmitProposal(w http.ResponseWriter, r *http.Request) {
	_, studentName, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var p proposalPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	supervisorID, err := primitive.ObjectIDFromHex(p.SupervisorID)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid supervisor id")
		return
	}

	title := htmlsanitize.Strip(p.Title)
	titleCI := text.Fold(title)

	st, err := h.Students.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	sup, err := h.Supervisors.GetByID(r.Context(), supervisorID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}

	if err := proposalpolicy.CheckSubmit(r.Context(), h.DB, &st, &sup, titleCI); err != nil {
		if proposalpolicy.IsDenial(err) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		h.Log.Error("proposal precondition check failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "proposal submission failed")
		return
	}

	var created models.Project
	err = txn.WithTransaction(r.Context(), h.DB.Client(), h.Log, func(ctx context.Context) error {
		var txErr error
		created, txErr = h.Projects.Create(ctx, models.Project{
			Title:        title,
			Description:  htmlsanitize.Sanitize(p.Description),
			Scope:        htmlsanitize.Sanitize(p.Scope),
			StudentIDs:   []primitive.ObjectID{st.ID},
			SupervisorID: &sup.ID,
		})
		if txErr != nil {
			return txErr
		}
		if txErr = h.Students.AddPending(ctx, st.ID, sup.ID); txErr != nil {
			return txErr
		}
		return h.Supervisors.AddRequest(ctx, sup.ID, models.ProjectRequest{
			ProjectID: created.ID,
			StudentID: st.ID,
			CreatedAt: time.Now().UTC(),
		})
	})
	if err == projectstore.ErrDuplicateTitle {
		httpjson.Error(w, http.StatusConflict, proposalpolicy.ErrTitleTaken.Error())
		return
	}
	if err != nil {
		h.Log.Error("proposal submission failed",
			zap.String("student_id", st.ID.Hex()),
			zap.String("supervisor_id", sup.ID.Hex()),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "proposal submission failed")
		return
	}

	// Notifications are best-effort; the proposal already exists.
	_ = h.Supervisors.PushNotification(r.Context(), []primitive.ObjectID{sup.ID},
		notify.New(models.NotifyImportant,
			fmt.Sprintf("%s proposed %q to you.", studentName, created.Title)))
	_ = h.Students.PushNotification(r.Context(), []primitive.ObjectID{st.ID},
		notify.New(models.NotifyImportant,
			fmt.Sprintf("Your proposal %q was sent to %s.", created.Title, sup.FullName)))

	h.Log.Info("proposal submitted",
		zap.String("project_id", created.ID.Hex()),
		zap.String("student_id", st.ID.Hex()),
		zap.String("supervisor_id", sup.ID.Hex()))

	httpjson.JSON(w, http.StatusCreated, created)
}
