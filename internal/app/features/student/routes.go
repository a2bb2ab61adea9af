// internal/app/features/student/routes.go
package student

import (
	"github.com/go-chi/chi/v5"

	"github.com/capstonehub/capstonehub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleStudent))

		// PROFILE
		pr.Get("/profile", h.ServeProfile)
		pr.Put("/profile", h.HandleUpdateProfile)

		// PROPOSALS & JOIN REQUESTS
		pr.Post("/proposals", h.HandleSubmitProposal)
		pr.Post("/groups/{groupID}/join", h.HandleJoinGroup)
		pr.Get("/requests", h.ServeRequests)

		// DIRECTORY
		pr.Get("/supervisors", h.ServeSupervisors)
		pr.Get("/ideas", h.ServeIdeas)

		// GROUP & SUBMISSIONS
		pr.Get("/group", h.ServeGroup)
		pr.Post("/group/submissions/{kind}", h.HandleSubmit)
		pr.Post("/group/docs", h.HandleAddDoc)
		pr.Delete("/group/docs/{docID}", h.HandleRemoveDoc)

		// SCHEDULE
		pr.Get("/deadlines", h.ServeDeadlines)
		pr.Get("/vivas", h.ServeViva)

		// EXTENSIONS
		pr.Get("/extensions", h.ServeExtensions)
		pr.Post("/extensions", h.HandleRequestExtension)

		// NOTIFICATIONS
		pr.Get("/notifications", h.ServeNotifications)
		pr.Put("/notifications/{id}/seen", h.HandleMarkNotificationSeen)
		pr.Delete("/notifications/{id}", h.HandleRemoveNotification)
	})

	return r
}
