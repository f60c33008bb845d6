// internal/app/features/admin/routes.go
package admin

import (
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register wires the admin routes. Every one of them requires the admin
// role.
func Register(r chi.Router, h *Handler, a *auth.Authenticator) {
	r.Group(func(ar chi.Router) {
		ar.Use(a.RequireSignedIn, a.RequireRole("admin"))
		ar.Get("/admin/users", h.ServeUsers)
		ar.Put("/admin/users/{id}/suspend", h.HandleSuspend)
		ar.Put("/admin/users/{id}/reinstate", h.HandleReinstate)
	})
}
