// internal/app/features/groups/moderation.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/status"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleApprove serves PUT /groups/{id}/approve (admin only).
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, status.Approved, "group approved")
}

// HandleReject serves PUT /groups/{id}/reject (admin only).
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, status.Rejected, "group rejected")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, stat, message string) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Groups.SetStatus(ctx, groupID, stat); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group status update failed",
			zap.String("group_id", groupID.Hex()),
			zap.String("status", stat),
			zap.Error(err))
		httpjson.ServerError(w, "failed to update group")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"message": message})
}

// HandleDelete serves DELETE /groups/{id} (admin only). Only the group
// document is removed; uploaded blobs stay in the bucket and remain
// retrievable by id.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Groups.Delete(ctx, groupID); err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group delete failed",
			zap.String("group_id", groupID.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, "failed to delete group")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"message": "group deleted"})
}
