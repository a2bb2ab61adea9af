// internal/app/features/supervisor/groups.go
package supervisor

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/policy/grouppolicy"
	groupstore "github.com/capstonehub/capstonehub/internal/app/store/groups"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/htmlsanitize"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/inputval"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// ServeGroups handles GET /supervisor/groups.
func (h *Handler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	groups, err := h.Groups.ListBySupervisor(r.Context(), userID)
	if err != nil {
		h.Log.Error("group listing failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load groups")
		return
	}
	httpjson.OK(w, groups)
}

// loadManagedGroup fetches the group and enforces that the caller may
// manage it. Writes the error response itself and returns ok=false.
func (h *Handler) loadManagedGroup(w http.ResponseWriter, r *http.Request) (models.Group, bool) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid group id")
		return models.Group{}, false
	}

	g, err := h.Groups.GetByID(r.Context(), groupID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "group not found")
		return models.Group{}, false
	}
	if !grouppolicy.CanManage(r, &g) {
		httpjson.Error(w, http.StatusForbidden, "you do not supervise this group")
		return models.Group{}, false
	}
	return g, true
}

// HandleSetMarks handles PUT /supervisor/groups/{id}/marks.
func (h *Handler) HandleSetMarks(w http.ResponseWriter, r *http.Request) {
	g, ok := h.loadManagedGroup(w, r)
	if !ok {
		return
	}

	var p marksPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	marks := models.Marks{
		Proposal:      p.Proposal,
		Documentation: p.Documentation,
		Project:       p.Project,
		Viva:          p.Viva,
	}
	if err := h.Groups.SetMarks(r.Context(), g.ID, marks); err != nil {
		h.Log.Error("set marks failed", zap.String("group_id", g.ID.Hex()), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not save marks")
		return
	}
	httpjson.Message(w, http.StatusOK, "marks saved")
}

// HandleReviewDoc handles POST /supervisor/groups/{id}/docs/{docID}/review.
func (h *Handler) HandleReviewDoc(w http.ResponseWriter, r *http.Request) {
	g, ok := h.loadManagedGroup(w, r)
	if !ok {
		return
	}

	var p reviewPayload
	if err := httpjson.Decode(r, &p, limits.MaxJSONBody); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := inputval.Struct(p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	docID := chi.URLParam(r, "docID")
	err := h.Groups.ReviewDoc(r.Context(), g.ID, docID, htmlsanitize.Sanitize(p.Review))
	if errors.Is(err, groupstore.ErrDocMissing) {
		httpjson.Error(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		h.Log.Error("doc review failed",
			zap.String("group_id", g.ID.Hex()),
			zap.String("doc_id", docID),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not save review")
		return
	}

	_ = h.Students.PushNotification(r.Context(), g.StudentIDs,
		notify.New(models.NotifyImportant,
			"Your supervisor reviewed a document for "+g.Title+"."))

	httpjson.Message(w, http.StatusOK, "review saved")
}
