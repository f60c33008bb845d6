// internal/app/features/materials/routes.go
package materials

import (
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register wires the material routes. Downloads are public; upload and
// listing require a signed-in member.
func Register(r chi.Router, h *Handler, a *auth.Authenticator) {
	r.Get("/api/materials/file/{filename}", h.HandleDownloadByName)
	r.Get("/api/materials/blob/{id}", h.HandleDownloadByID)

	r.Group(func(pr chi.Router) {
		pr.Use(a.RequireSignedIn)
		pr.Post("/api/materials/{id}/materials", h.HandleUpload)
		pr.Get("/api/materials/{id}/materials", h.HandleList)
		pr.Get("/groups/{id}/materials", h.HandleList)
	})
}
