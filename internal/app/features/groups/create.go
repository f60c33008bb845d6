// internal/app/features/groups/create.go
package groups

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/htmlsanitize"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/app/system/txn"
	"github.com/brainhive/brainhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createGroupRequest struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// HandleCreate serves POST /groups. The new group starts in pending status
// with the creator as its only member, and the creator's groupsJoined list
// is updated in the same transaction.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	var req createGroupRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	creatorID, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var g models.Group
	err = txn.WithTransaction(ctx, h.Client, func(ctx context.Context) error {
		var err error
		g, err = h.Groups.Create(ctx, models.Group{
			Title:       htmlsanitize.Sanitize(req.Title),
			Subject:     htmlsanitize.Sanitize(req.Subject),
			Description: htmlsanitize.Sanitize(req.Description),
			CreatedBy:   creatorID,
		})
		if err != nil {
			return err
		}
		return h.Users.AddJoinedGroup(ctx, creatorID, g.ID)
	})
	if err != nil {
		if errors.Is(err, groupstore.ErrValidation) {
			httpjson.BadRequest(w, "title, subject and description are required")
			return
		}
		h.Log.Error("group create failed", zap.Error(err))
		httpjson.ServerError(w, "failed to create group")
		return
	}

	view, err := h.viewOf(ctx, g)
	if err != nil {
		h.Log.Error("group resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to create group")
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message": "group created and pending approval",
		"group":   view,
	})
}
