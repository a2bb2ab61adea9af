// internal/app/features/student/docs.go
package student

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/policy/grouppolicy"
	groupstore "github.com/capstonehub/capstonehub/internal/app/store/groups"
	"github.com/capstonehub/capstonehub/internal/app/store/notify"
	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/htmlsanitize"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
	"github.com/capstonehub/capstonehub/internal/app/system/limits"
	"github.com/capstonehub/capstonehub/internal/domain/models"
)

// HandleAddDoc handles POST /student/group/docs: sharing a working
// document with the supervisor for review. The multipart form carries
// either an uploaded "document" file, a "web_link" to an externally
// hosted document, or both; "comment" is an optional note.
func (h *Handler) HandleAddDoc(w http.ResponseWriter, r *http.Request) {
	_, studentName, userID, ok := authz.UserCtx(r)
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
		httpjson.Error(w, http.StatusInternalServerError, "could not share document")
		return
	}
	if !grouppolicy.CanSubmit(r, &g) {
		httpjson.Error(w, http.StatusForbidden, "only group members can share documents")
		return
	}

	if err := r.ParseMultipartForm(limits.MaxDocumentUpload); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "could not parse upload; max 25 MB")
		return
	}

	doc := models.GroupDoc{
		ID:      uuid.New().String(),
		WebLink: htmlsanitize.Strip(r.FormValue("web_link")),
		Comment: htmlsanitize.Strip(r.FormValue("comment")),
	}

	file, header, err := r.FormFile("document")
	switch {
	case err == nil:
		defer file.Close()
		if h.Files == nil {
			httpjson.Error(w, http.StatusServiceUnavailable, "document storage is not configured")
			return
		}
		info, putErr := h.Files.Put(r.Context(), "docs", header.Filename, file, header.Size,
			header.Header.Get("Content-Type"))
		if putErr != nil {
			h.Log.Error("doc upload failed",
				zap.String("group_id", g.ID.Hex()),
				zap.Error(putErr))
			httpjson.Error(w, http.StatusInternalServerError, "could not share document")
			return
		}
		doc.DocLink = info.Key
	case errors.Is(err, http.ErrMissingFile):
		if doc.WebLink == "" {
			httpjson.Error(w, http.StatusBadRequest, "a document file or web link is required")
			return
		}
	default:
		httpjson.Error(w, http.StatusBadRequest, "could not read the document file")
		return
	}

	if err := h.Groups.AddDoc(r.Context(), g.ID, doc); err != nil {
		h.Log.Error("doc record failed",
			zap.String("group_id", g.ID.Hex()),
			zap.String("doc_id", doc.ID),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not share document")
		return
	}

	_ = h.Supervisors.PushNotification(r.Context(), []primitive.ObjectID{g.SupervisorID},
		notify.New(models.NotifyImportant,
			fmt.Sprintf("%s shared a document for %q.", studentName, g.Title)))

	httpjson.JSON(w, http.StatusCreated, map[string]any{"success": true, "doc": doc})
}

// HandleRemoveDoc handles DELETE /student/group/docs/{docID}. Only the
// storage record is dropped; the uploaded object stays in the bucket.
func (h *Handler) HandleRemoveDoc(w http.ResponseWriter, r *http.Request) {
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
		httpjson.Error(w, http.StatusInternalServerError, "could not remove document")
		return
	}
	if !grouppolicy.CanSubmit(r, &g) {
		httpjson.Error(w, http.StatusForbidden, "only group members can remove documents")
		return
	}

	docID := chi.URLParam(r, "docID")
	err = h.Groups.RemoveDoc(r.Context(), g.ID, docID)
	if errors.Is(err, groupstore.ErrDocMissing) {
		httpjson.Error(w, http.StatusNotFound, "document not found")
		return
	}
	if err != nil {
		h.Log.Error("doc removal failed",
			zap.String("group_id", g.ID.Hex()),
			zap.String("doc_id", docID),
			zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not remove document")
		return
	}
	httpjson.Message(w, http.StatusOK, "document removed")
}
