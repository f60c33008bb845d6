// internal/app/features/profile/profile.go
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// authoredMessage is a message the user wrote, tagged with the group it
// belongs to.
type authoredMessage struct {
	models.Message
	GroupID    primitive.ObjectID `json:"groupId"`
	GroupTitle string             `json:"groupTitle"`
}

// ServeProfile serves GET /user/profile: the user record, the groups they
// belong to, and every message they authored across those groups.
//
// The message aggregation is a scatter-gather read over the whole group
// collection filtered by membership — O(groups the user joined) per view.
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		httpjson.Unauthorized(w, "malformed user id in token")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("profile user fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch profile")
		return
	}

	groups, err := h.Groups.ListByMember(ctx, userID)
	if err != nil {
		h.Log.Error("profile groups fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch profile")
		return
	}

	messages := []authoredMessage{}
	for _, g := range groups {
		for _, m := range g.Messages {
			if m.AuthorID == userID {
				messages = append(messages, authoredMessage{
					Message:    m,
					GroupID:    g.ID,
					GroupTitle: g.Title,
				})
			}
		}
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"user":     user,
		"groups":   groups,
		"messages": messages,
	})
}

// ServeUser serves GET /user/{id}: any user's record with joined-group
// titles resolved.
func (h *Handler) ServeUser(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("user fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch user")
		return
	}

	refs, err := h.groupRefs(ctx, user.GroupsJoined)
	if err != nil {
		h.Log.Error("group titles fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch user")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"user":         user,
		"groupsJoined": refs,
	})
}

// groupRefs resolves joined-group ids to {id, title} pairs, preserving the
// joined order and silently dropping stale references left behind by group
// deletion.
func (h *Handler) groupRefs(ctx context.Context, ids []primitive.ObjectID) ([]models.GroupRef, error) {
	byID, err := h.Groups.RefsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	refs := make([]models.GroupRef, 0, len(ids))
	for _, gid := range ids {
		if ref, ok := byID[gid]; ok {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}
