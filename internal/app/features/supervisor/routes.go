// internal/app/features/supervisor/routes.go
package supervisor

import (
	"github.com/go-chi/chi/v5"

	"github.com/capstonehub/capstonehub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleSupervisor))

		// PROFILE
		pr.Get("/profile", h.ServeProfile)
		pr.Put("/profile", h.HandleUpdateProfile)

		// REQUEST INBOX
		pr.Get("/requests", h.ServeRequests)
		pr.Post("/requests/{projectID}/accept", h.HandleAccept)
		pr.Post("/requests/{projectID}/reject", h.HandleReject)

		// GROUPS
		pr.Get("/groups", h.ServeGroups)
		pr.Put("/groups/{id}/marks", h.HandleSetMarks)
		pr.Post("/groups/{id}/docs/{docID}/review", h.HandleReviewDoc)

		// IDEAS
		pr.Get("/ideas", h.ServeIdeas)
		pr.Post("/ideas", h.HandleCreateIdea)
		pr.Delete("/ideas/{id}", h.HandleDeleteIdea)

		// NOTIFICATIONS
		pr.Get("/notifications", h.ServeNotifications)
		pr.Put("/notifications/{id}/seen", h.HandleMarkNotificationSeen)
		pr.Delete("/notifications/{id}", h.HandleRemoveNotification)
	})

	return r
}
