// internal/app/features/supervisor/requests.go
package supervisor

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/system/authz"
	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

// ServeRequests handles GET /supervisor/requests: the undecided inbox
// entries resolved with student and project detail. Entries whose
// project or student no longer exists are skipped.
func (h *Handler) ServeRequests(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "sign in required")
		return
	}

	sup, err := h.Supervisors.GetByID(r.Context(), userID)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "supervisor not found")
		return
	}

	out := make([]inboxEntry, 0, len(sup.ProjectRequests))
	for _, req := range sup.ProjectRequests {
		if req.IsAccepted {
			continue
		}
		p, err := h.Projects.GetByID(r.Context(), req.ProjectID)
		if err != nil {
			continue
		}
		st, err := h.Students.GetByID(r.Context(), req.StudentID)
		if err != nil {
			h.Log.Debug("skipping inbox entry with missing student",
				zap.String("student_id", req.StudentID.Hex()))
			continue
		}

		var e inboxEntry
		e.Project = p
		e.Student.ID = st.ID.Hex()
		e.Student.FullName = st.FullName
		e.Student.RollNo = st.RollNo
		e.Student.Email = st.Email
		e.CreatedAt = req.CreatedAt.UTC().Format(time.RFC3339)
		out = append(out, e)
	}

	httpjson.OK(w, out)
}
