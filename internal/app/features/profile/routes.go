// internal/app/features/profile/routes.go
package profile

import (
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register mounts the profile routes. Everything here requires a signed-in
// user.
func Register(r chi.Router, h *Handler, a *auth.Authenticator) {
	r.Group(func(pr chi.Router) {
		pr.Use(a.RequireSignedIn)

		pr.Get("/user/profile", h.ServeProfile)
		pr.Put("/user/update-info", h.HandleUpdateInfo)
		pr.Put("/user/profile-pic", h.HandleProfilePic)
		pr.Get("/user/{id}", h.ServeUser)
	})
}
