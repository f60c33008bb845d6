// internal/app/features/notify/notify.go
package notify

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/mailer"
	"github.com/brainhive/brainhive/internal/app/system/metrics"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleNotifyGroup serves POST /api/notify-group/{groupId}: sends the
// announcement email to every member of the group in one SMTP transaction.
func (h *Handler) HandleNotifyGroup(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to notify group")
		return
	}

	refs, err := h.Users.RefsByIDs(ctx, g.Members)
	if err != nil {
		h.Log.Error("member resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to notify group")
		return
	}

	var recipients []string
	for _, id := range g.Members {
		if ref, ok := refs[id]; ok && ref.Email != "" {
			recipients = append(recipients, ref.Email)
		}
	}
	if len(recipients) == 0 {
		httpjson.BadRequest(w, "group has no member emails")
		return
	}

	email := mailer.BuildGroupAnnouncement(mailer.AnnouncementData{
		SiteName:   h.SiteName,
		GroupTitle: g.Title,
	})
	email.To = recipients

	if err := h.Mail.Send(email); err != nil {
		metrics.ObserveMailDelivery("error")
		h.Log.Error("announcement send failed",
			zap.String("group_id", groupID.Hex()),
			zap.Int("recipients", len(recipients)),
			zap.Error(err))
		httpjson.ServerError(w, "failed to send notifications")
		return
	}
	metrics.ObserveMailDelivery("ok")

	h.Log.Info("group announcement sent",
		zap.String("group_id", groupID.Hex()),
		zap.Int("recipients", len(recipients)))

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message":    "notifications sent",
		"recipients": len(recipients),
	})
}
