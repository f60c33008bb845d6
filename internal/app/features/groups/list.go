// internal/app/features/groups/list.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeList serves GET /groups: every group with creator and members
// resolved. The listing is public; the client filters by moderation status.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	gs, err := h.Groups.List(ctx)
	if err != nil {
		h.Log.Error("group list failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch groups")
		return
	}

	views, err := h.viewsOf(ctx, gs)
	if err != nil {
		h.Log.Error("group list resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch groups")
		return
	}

	httpjson.Respond(w, http.StatusOK, views)
}

// ServeGroup serves GET /group/{id}: one group with members, creator and
// message authors resolved.
func (h *Handler) ServeGroup(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch group")
		return
	}

	view, err := h.viewOf(ctx, g)
	if err != nil {
		h.Log.Error("group resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch group")
		return
	}

	httpjson.Respond(w, http.StatusOK, view)
}
