// internal/app/features/supervisor/ideas.go
package supervisor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	projectstore "github.com/capstonehub/capstonehub/internal/app/store/projects"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/htmlsanitize"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeIdeas handles GET /supervisor/ideas: the caller's own offered
// ideas, including deactivated ones.
func (h *Handler) ServeIdeas(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ideas, err := h.Projects.ListIdeasBySupervisor(r.Context(), userID)
	if err != nil {
		h.Log.Error("idea listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load ideas")
		return
	}
	httpjson.OK(w, ideas)
}

// HandleCreateIdea handles POST /supervisor/ideas. Ideas are pending
// projects with no students; they stay active while the supervisor has
// slots and are listed to students browsing for a topic.
func (h *Handler) HandleCreateIdea(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	var p ideaPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	sup, err := h.Supervisors.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}
	if sup.Slots <= 0 {
		httpjson.Error(w, http.StatusConflict, "you have no slots left to offer ideas")
		return
	}

	created, err := h.Projects.Create(r.Context(), models.Project{
		Title:        htmlsanitize.Strip(p.Title),
		Description:  htmlsanitize.Sanitize(p.Description),
		Scope:        htmlsanitize.Sanitize(p.Scope),
		StudentIDs:   []primitive.ObjectID{},
		SupervisorID: &sup.ID,
		Active:       true,
	})
	if err == projectstore.ErrDuplicateTitle {
		httpjson.Error(w, http.StatusConflict, "a project with this title already exists")
		return
	}
	if err != nil {
		h.Log.Error("idea creation failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not create idea")
		return
	}

	httpjson.JSON(w, http.StatusCreated, created)
}

// HandleDeleteIdea handles DELETE /supervisor/ideas/{id}. Only the
// owner's own unclaimed ideas can be removed.
func (h *Handler) HandleDeleteIdea(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	ideaID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid idea id")
		return
	}

	idea, err := h.Projects.GetByID(r.Context(), ideaID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "idea not found")
		return
	}
	if idea.SupervisorID == nil || *idea.SupervisorID != userID {
		httpjson.Error(w, http.StatusForbidden, "this idea is not yours")
		return
	}
	if idea.Status != models.ProjectPending || len(idea.StudentIDs) > 0 {
		httpjson.Error(w, http.StatusConflict, "only unclaimed ideas can be deleted")
		return
	}

	if _, err := h.Projects.Delete(r.Context(), ideaID); err != nil {
		h.Log.Error("idea deletion failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not delete idea")
		return
	}
	httpjson.Message(w, http.StatusOK, "idea deleted")
}
