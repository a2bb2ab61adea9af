// internal/app/features/student/submissions.go
package student

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/policy/grouppolicy"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/htmlsanitize"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleSubmit handles POST /student/group/submissions/{kind}: a
// multipart upload of one deliverable for the caller's group.
//
// The deliverable must be uploaded before its portal-wide deadline, or
// before the latest approved extension for the group. A re-upload before
// the cutoff replaces the previous record.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	_, studentName, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	kind := chi.URLParam(r, "kind")
	if !models.ValidDeadlineKind(kind) {
		httpjson.Error(w, http.StatusBadRequest, "unknown deliverable kind")
		return
	}

	if h.Files == nil {
		httpjson.Error(w, http.StatusServiceUnavailable, "document storage is not configured")
		return
	}

	g, err := h.Groups.GetByStudent(r.Context(), userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		httpjson.Error(w, http.StatusNotFound, "you do not belong to a group yet")
		return
	}
	if err != nil {
		httpjson.Error(w, http.StatusInternalServerError, "submission failed")
		return
	}
	if !grouppolicy.CanSubmit(r, &g) {
		httpjson.Error(w, http.StatusForbidden, "only group members can submit")
		return
	}

	cutoff, err := h.submissionCutoff(r, g.ID, kind)
	if err != nil {
		h.Log.Error("deadline lookup failed", zap.String("kind", kind), zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "submission failed")
		return
	}
	if !cutoff.IsZero() && time.Now().UTC().After(cutoff) {
		httpjson.Error(w, http.StatusConflict,
			fmt.Sprintf("the %s deadline has passed", kind))
		return
	}

	if err := r.ParseMultipartForm(limits.MaxDocumentUpload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "could not parse upload; max 25 MB")
		return
	}
	file, header, err := r.FormFile("document")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "a document file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	info, err := h.Files.Put(r.Context(), "submissions/"+kind, header.Filename, file, header.Size, contentType)
	if err != nil {
		h.Log.Error("submission upload failed",
			zap.String("group_id", g.ID.Hex()),
			zap.String("kind", kind),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "submission failed")
		return
	}

	now := time.Now().UTC()
	rec := models.SubmissionRecord{
		Submitted:    true,
		SubmittedAt:  &now,
		SubmittedBy:  &userID,
		DocumentLink: info.Key,
		WebLink:      htmlsanitize.Strip(r.FormValue("web_link")),
	}
	if err := h.Groups.RecordSubmission(r.Context(), g.ID, kind, rec); err != nil {
		h.Log.Error("submission record failed",
			zap.String("group_id", g.ID.Hex()),
			zap.String("kind", kind),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "submission failed")
		return
	}

	_ = h.Supervisors.PushNotification(r.Context(), []primitive.ObjectID{g.SupervisorID},
		notify.New(models.NotifyImportant,
			fmt.Sprintf("%s submitted the %s for %q.", studentName, kind, g.Title)))

	h.Log.Info("deliverable submitted",
		zap.String("group_id", g.ID.Hex()),
		zap.String("kind", kind),
		zap.String("key", info.Key))

	httpjson.Message(w, http.StatusCreated, kind+" submitted")
}

// submissionCutoff returns the effective cutoff for a deliverable: the
// portal deadline, pushed out by the latest approved extension for the
// group. Zero time means no deadline is set and uploads are always open.
func (h *Handler) submissionCutoff(r *http.Request, groupID primitive.ObjectID, kind string) (time.Time, error) {
	d, err := h.Deadlines.Get(r.Context(), kind)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	cutoff := d.Due
	until, err := h.Extensions.ApprovedUntil(r.Context(), groupID, kind)
	if err != nil {
		return time.Time{}, err
	}
	if until.After(cutoff) {
		cutoff = until
	}
	return cutoff, nil
}
