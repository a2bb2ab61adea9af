// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/capstonehub/capstonehub/internal/app/policy/adminpolicy"
	"github.com/capstonehub/capstonehub/internal/app/system/auth"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole(auth.RoleAdmin))

		// OVERSIGHT (read-only, any admin)
		pr.Get("/students", h.ServeStudents)
		pr.Get("/supervisors", h.ServeSupervisors)
		pr.Get("/externals", h.ServeExternals)
		pr.Get("/deadlines", h.ServeDeadlines)
		pr.Get("/vivas", h.ServeVivas)
		pr.Get("/extensions", h.ServeExtensions)
		pr.Get("/groups", h.ServeGroups)
		pr.Get("/projects", h.ServeProjects)

		// MUTATIONS (write permission or superadmin)
		pr.Group(func(wr chi.Router) {
			wr.Use(adminpolicy.RequireWrite)

			wr.Post("/students", h.HandleCreateStudent)
			wr.Post("/students/import", h.HandleImportStudents)
			wr.Put("/students/{id}", h.HandleUpdateStudent)
			wr.Delete("/students/{id}", h.HandleDeleteStudent)

			wr.Post("/supervisors", h.HandleCreateSupervisor)
			wr.Post("/supervisors/import", h.HandleImportSupervisors)
			wr.Put("/supervisors/{id}", h.HandleUpdateSupervisor)
			wr.Delete("/supervisors/{id}", h.HandleDeleteSupervisor)

			wr.Post("/externals", h.HandleCreateExternal)
			wr.Put("/externals/{id}", h.HandleUpdateExternal)
			wr.Delete("/externals/{id}", h.HandleDeleteExternal)

			wr.Put("/deadlines/{kind}", h.HandleSetDeadline)
			wr.Delete("/deadlines/{kind}", h.HandleDeleteDeadline)

			wr.Post("/vivas", h.HandleScheduleViva)
			wr.Put("/vivas/{id}", h.HandleRescheduleViva)
			wr.Put("/vivas/{id}/status", h.HandleSetVivaStatus)
			wr.Delete("/vivas/{id}", h.HandleDeleteViva)

			wr.Put("/extensions/{id}", h.HandleDecideExtension)
		})

		// ADMIN ACCOUNTS (superadmin only)
		pr.Group(func(sr chi.Router) {
			sr.Use(adminpolicy.RequireSuperAdmin)

			sr.Get("/admins", h.ServeAdmins)
			sr.Post("/admins", h.HandleCreateAdmin)
			sr.Put("/admins/{id}/permissions", h.HandleSetAdminPermissions)
			sr.Delete("/admins/{id}", h.HandleDeleteAdmin)
		})
	})

	return r
}
