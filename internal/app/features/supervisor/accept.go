// internal/app/features/supervisor/accept.go
package supervisor

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/policy/proposalpolicy"
	groupstore "github.com/capstonehub/capstonehub/internal/app/store/groups"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	supervisorstore "github.com/capstonehub/capstonehub/internal/app/store/supervisors"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/txn"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleAccept handles POST /supervisor/requests/{projectID}/accept.
//
// Acceptance is first-writer-wins on the project: once any supervisor
// has accepted it, later accepts fail with a 409 naming the winner. The
// group is resolved by (supervisor, title): an existing group under
// three students absorbs the student without consuming a slot; otherwise
// a new group is created and one slot is claimed. When the last slot
// goes, all of the supervisor's open ideas are deactivated.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
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

	project, err := h.Projects.GetByID(r.Context(), projectID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// The project was accepted elsewhere and cleaned up, or deleted.
		_ = h.Supervisors.RemoveRequest(r.Context(), sup.ID, projectID)
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "accept failed")
		return
	}

	// First-writer-wins: somebody else may have accepted this project
	// since the request landed in our inbox.
	if project.Status == models.ProjectAccepted && project.SupervisorID != nil && *project.SupervisorID != sup.ID {
		winner := "another supervisor"
		if other, err := h.Supervisors.GetByID(r.Context(), *project.SupervisorID); err == nil {
			winner = other.FullName
		}
		_ = h.Supervisors.RemoveRequest(r.Context(), sup.ID, projectID)
		httpjson.Error(w, http.StatusConflict,
			fmt.Sprintf("project already accepted by %s", winner))
		return
	}

	st, err := h.Students.GetByID(r.Context(), req.StudentID)
	if err != nil {
		_ = h.Supervisors.RemoveRequest(r.Context(), sup.ID, projectID)
		httpjson.Error(w, http.StatusNotFound, "student not found")
		return
	}
	if st.IsGroupMember {
		_ = h.Supervisors.RemoveRequest(r.Context(), sup.ID, projectID)
		httpjson.Error(w, http.StatusConflict, "student already belongs to a group")
		return
	}

	var (
		group        models.Group
		createdGroup bool
		slotsLeft    = sup.Slots
	)
	err = txn.WithTransaction(r.Context(), h.DB.Client(), h.Log, func(ctx context.Context) error {
		existing, lookupErr := h.Groups.FindBySupervisorTitle(ctx, sup.ID, project.TitleCI)
		switch {
		case lookupErr == nil:
			if addErr := h.Groups.AddStudent(ctx, existing.ID, st.ID); addErr != nil {
				return addErr
			}
			group = existing
			group.StudentIDs = append(group.StudentIDs, st.ID)
		case errors.Is(lookupErr, mongo.ErrNoDocuments):
			if sup.Slots <= 0 {
				return supervisorstore.ErrNoSlots
			}
			created, createErr := h.Groups.Create(ctx, models.Group{
				Title:        project.Title,
				Description:  project.Description,
				Scope:        project.Scope,
				SupervisorID: sup.ID,
				ProjectID:    project.ID,
				StudentIDs:   []primitive.ObjectID{st.ID},
			})
			if createErr != nil {
				return createErr
			}
			after, claimErr := h.Supervisors.ClaimSlot(ctx, sup.ID, created.ID)
			if claimErr != nil {
				return claimErr
			}
			group = created
			createdGroup = true
			slotsLeft = after.Slots
			if after.Slots == 0 {
				if _, deactErr := h.Projects.DeactivateIdeas(ctx, sup.ID); deactErr != nil {
					return deactErr
				}
			}
		default:
			return lookupErr
		}

		if markErr := h.Projects.MarkAccepted(ctx, project.ID, sup.ID); markErr != nil {
			return markErr
		}
		if addErr := h.Projects.AddStudent(ctx, project.ID, st.ID); addErr != nil {
			return addErr
		}
		if markErr := h.Supervisors.MarkRequestAccepted(ctx, sup.ID, project.ID); markErr != nil {
			return markErr
		}

		// Drop any other requests this student has parked in our inbox.
		for _, other := range sup.ProjectRequests {
			if other.StudentID == st.ID && other.ProjectID != project.ID {
				if remErr := h.Supervisors.RemoveRequest(ctx, sup.ID, other.ProjectID); remErr != nil {
					return remErr
				}
			}
		}

		// Membership flips and the student's ledgers clear together.
		return h.Students.JoinGroup(ctx, []primitive.ObjectID{st.ID}, group.ID)
	})
	switch {
	case err == nil:
	case errors.Is(err, supervisorstore.ErrNoSlots):
		httpjson.Error(w, http.StatusConflict, "no slots available")
		return
	case errors.Is(err, groupstore.ErrGroupFull):
		httpjson.Error(w, http.StatusConflict, "group is full")
		return
	default:
		h.Log.Error("accept failed",
			zap.String("project_id", projectID.Hex()),
			zap.String("supervisor_id", sup.ID.Hex()),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "accept failed")
		return
	}

	_ = h.Students.PushNotification(r.Context(), []primitive.ObjectID{st.ID},
		notify.New(models.NotifyAccepted,
			fmt.Sprintf("%s accepted your request for %q.", supName, project.Title)))
	_ = h.Supervisors.PushNotification(r.Context(), []primitive.ObjectID{sup.ID},
		notify.New(models.NotifyAccepted,
			fmt.Sprintf("You accepted %s for %q.", st.FullName, project.Title)))

	msg := "student added to existing group"
	if createdGroup {
		msg = "new group created"
	}
	h.Log.Info("request accepted",
		zap.String("project_id", project.ID.Hex()),
		zap.String("group_id", group.ID.Hex()),
		zap.Bool("created_group", createdGroup),
		zap.Int("slots_left", slotsLeft))

	httpjson.OK(w, acceptResponse{
		Success:      true,
		Message:      msg,
		Group:        group,
		CreatedGroup: createdGroup,
		SlotsLeft:    slotsLeft,
	})
}
