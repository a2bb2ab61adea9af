// internal/app/features/admin/oversight.go
package admin

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/capstonehub/capstonehub/internal/app/system/httpjson"
)

// ServeGroups handles GET /admin/groups, the portal-wide progress view.
func (h *Handler) ServeGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.Groups.List(r.Context())
	if err != nil {
		h.Log.Error("list groups failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "could not load groups")
		return
	}
	httpjson.OK(w, map[string]any{"success": true, "groups": groups})
}

// ServeProjects handles GET /admin/projects. ?status=accepted narrows to
// accepted projects, anything else lists open ideas and proposals too.
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	var err error
	switch r.URL.Query().Get("status") {
	case "accepted":
		projects, listErr := h.Projects.ListAccepted(r.Context())
		if listErr == nil {
			httpjson.OK(w, map[string]any{"success": true, "projects": projects})
			return
		}
		err = listErr
	default:
		projects, listErr := h.Projects.List(r.Context())
		if listErr == nil {
			httpjson.OK(w, map[string]any{"success": true, "projects": projects})
			return
		}
		err = listErr
	}

	h.Log.Error("list projects failed", zap.Error(err))
	httpjson.Error(w, http.StatusInternalServerError, "could not load projects")
}
