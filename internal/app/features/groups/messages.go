// internal/app/features/groups/messages.go
package groups

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/brainhive/brainhive/internal/app/policy/grouppolicy"
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/htmlsanitize"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type messageRequest struct {
	Text string `json:"text"`
}

// HandlePostMessage serves POST /groups/{id}/message. Only current members
// may post; the text is sanitized before storage.
func (h *Handler) HandlePostMessage(w http.ResponseWriter, r *http.Request) {
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

	var req messageRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	text := htmlsanitize.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		httpjson.BadRequest(w, "message text is required")
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
		httpjson.ServerError(w, "failed to post message")
		return
	}

	if !grouppolicy.CanPostMessage(&g, userID) {
		httpjson.Forbidden(w, "only members can post messages")
		return
	}

	msg, err := h.Groups.AppendMessage(ctx, groupID, userID, text)
	if err != nil {
		h.Log.Error("message append failed",
			zap.String("group_id", groupID.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, "failed to post message")
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message": "message posted",
		"data":    msg,
	})
}

// HandleEditMessage serves PUT /groups/{groupId}/message/{messageId}.
// Author or admin only; the author keeps the right even after leaving the
// group.
func (h *Handler) HandleEditMessage(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	groupID, messageID, ok := messageParams(w, r)
	if !ok {
		return
	}

	var req messageRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	text := htmlsanitize.Sanitize(strings.TrimSpace(req.Text))
	if text == "" {
		httpjson.BadRequest(w, "message text is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	msg, ok := h.authorizeMessage(ctx, w, ident, groupID, messageID)
	if !ok {
		return
	}

	if err := h.Groups.UpdateMessageText(ctx, groupID, messageID, text); err != nil {
		if errors.Is(err, groupstore.ErrMessageNotFound) {
			httpjson.NotFound(w, "message not found")
			return
		}
		h.Log.Error("message edit failed",
			zap.String("group_id", groupID.Hex()),
			zap.String("message_id", messageID.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, "failed to edit message")
		return
	}

	msg.Text = text
	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "message updated",
		"data":    msg,
	})
}

// HandleDeleteMessage serves DELETE /groups/{groupId}/message/{messageId}.
func (h *Handler) HandleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	groupID, messageID, ok := messageParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, ok := h.authorizeMessage(ctx, w, ident, groupID, messageID); !ok {
		return
	}

	if err := h.Groups.RemoveMessage(ctx, groupID, messageID); err != nil {
		switch {
		case errors.Is(err, groupstore.ErrNotFound):
			httpjson.NotFound(w, "group not found")
		case errors.Is(err, groupstore.ErrMessageNotFound):
			httpjson.NotFound(w, "message not found")
		default:
			h.Log.Error("message delete failed",
				zap.String("group_id", groupID.Hex()),
				zap.String("message_id", messageID.Hex()),
				zap.Error(err))
			httpjson.ServerError(w, "failed to delete message")
		}
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"message": "message deleted"})
}

func messageParams(w http.ResponseWriter, r *http.Request) (groupID, messageID primitive.ObjectID, ok bool) {
	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "groupId"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	messageID, err = primitive.ObjectIDFromHex(chi.URLParam(r, "messageId"))
	if err != nil {
		httpjson.BadRequest(w, "invalid message id")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return groupID, messageID, true
}

// authorizeMessage loads the group and message and checks the caller may
// modify it, writing the error response itself when not.
func (h *Handler) authorizeMessage(ctx context.Context, w http.ResponseWriter, ident *auth.Identity, groupID, messageID primitive.ObjectID) (*models.Message, bool) {
	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return nil, false
		}
		h.Log.Error("group fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to load message")
		return nil, false
	}

	msg := g.MessageByID(messageID)
	if msg == nil {
		httpjson.NotFound(w, "message not found")
		return nil, false
	}

	if !grouppolicy.CanModifyMessage(msg, ident) {
		httpjson.Forbidden(w, "you can only modify your own messages")
		return nil, false
	}
	return msg, true
}
