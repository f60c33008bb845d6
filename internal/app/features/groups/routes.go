// internal/app/features/groups/routes.go
package groups

import (
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register wires the group routes. Listing and single-group reads are
// public; everything else needs a signed-in caller, and moderation needs
// the admin role.
func Register(r chi.Router, h *Handler, a *auth.Authenticator) {
	r.Get("/groups", h.ServeList)
	r.Get("/group/{id}", h.ServeGroup)

	r.Group(func(pr chi.Router) {
		pr.Use(a.RequireSignedIn)
		pr.Post("/groups", h.HandleCreate)
		pr.Post("/groups/{id}/join", h.HandleJoin)
		pr.Post("/groups/{id}/leave", h.HandleLeave)
		pr.Post("/groups/{id}/message", h.HandlePostMessage)
		pr.Put("/groups/{groupId}/message/{messageId}", h.HandleEditMessage)
		pr.Delete("/groups/{groupId}/message/{messageId}", h.HandleDeleteMessage)
	})

	r.Group(func(ar chi.Router) {
		ar.Use(a.RequireSignedIn, a.RequireRole("admin"))
		ar.Put("/groups/{id}/approve", h.HandleApprove)
		ar.Put("/groups/{id}/reject", h.HandleReject)
		ar.Delete("/groups/{id}", h.HandleDelete)
	})
}
