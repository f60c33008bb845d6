// internal/app/features/groups/membership.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleJoin serves POST /groups/{id}/join. Joining twice is a no-op that
// still returns the group, so clients can treat the call as idempotent.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
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
		httpjson.ServerError(w, "failed to join group")
		return
	}

	if g.HasMember(userID) {
		view, err := h.viewOf(ctx, g)
		if err != nil {
			h.Log.Error("group resolve failed", zap.Error(err))
			httpjson.ServerError(w, "failed to join group")
			return
		}
		httpjson.Respond(w, http.StatusOK, map[string]any{
			"message": "already a member",
			"group":   view,
		})
		return
	}

	err = txn.WithTransaction(ctx, h.Client, func(ctx context.Context) error {
		if err := h.Groups.AddMember(ctx, groupID, userID); err != nil {
			return err
		}
		return h.Users.AddJoinedGroup(ctx, userID, groupID)
	})
	if err != nil {
		h.Log.Error("group join failed",
			zap.String("group_id", groupID.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, "failed to join group")
		return
	}

	g, err = h.Groups.GetByID(ctx, groupID)
	if err != nil {
		h.Log.Error("group refetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to join group")
		return
	}
	view, err := h.viewOf(ctx, g)
	if err != nil {
		h.Log.Error("group resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to join group")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "joined group successfully",
		"group":   view,
	})
}

// HandleLeave serves POST /groups/{id}/leave. Leaving a group the caller is
// not a member of succeeds without changing anything. Messages the caller
// authored stay in the group.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err = txn.WithTransaction(ctx, h.Client, func(ctx context.Context) error {
		if err := h.Groups.RemoveMember(ctx, groupID, userID); err != nil {
			return err
		}
		return h.Users.RemoveJoinedGroup(ctx, userID, groupID)
	})
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group leave failed",
			zap.String("group_id", groupID.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, "failed to leave group")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"message": "left group successfully"})
}
