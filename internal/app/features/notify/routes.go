// internal/app/features/notify/routes.go
package notify

import (
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Register wires the notification trigger. Any signed-in user may fire it.
func Register(r chi.Router, h *Handler, a *auth.Authenticator) {
	r.Group(func(pr chi.Router) {
		pr.Use(a.RequireSignedIn)
		pr.Post("/api/notify-group/{groupId}", h.HandleNotifyGroup)
	})
}
