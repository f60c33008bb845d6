// internal/app/features/auth/routes.go
package authfeature

import (
	"github.com/go-chi/chi/v5"
)

// Register mounts the public credential routes on the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/login", h.HandleLogin)
	r.Post("/users/register", h.HandleRegister)
}
