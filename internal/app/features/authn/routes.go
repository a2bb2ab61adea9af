// internal/app/features/authn/routes.go
package authn

import (
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)
	r.Post("/logout", h.HandleLogout)
	r.Post("/register", h.HandleRegister)
	r.Get("/me", h.HandleMe)

	return r
}
