// internal/app/features/admin/users.go
package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/status"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// userView is the directory row returned to admins, with the joined groups
// resolved to {id,title} references.
type userView struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	Contact      string             `json:"contact"`
	Role         string             `json:"role"`
	Status       string             `json:"status"`
	GroupsJoined []models.GroupRef  `json:"groupsJoined"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// ServeUsers serves GET /admin/users.
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		h.Log.Error("user list failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch users")
		return
	}

	seen := make(map[primitive.ObjectID]struct{})
	var groupIDs []primitive.ObjectID
	for _, u := range users {
		for _, gid := range u.GroupsJoined {
			if _, ok := seen[gid]; ok {
				continue
			}
			seen[gid] = struct{}{}
			groupIDs = append(groupIDs, gid)
		}
	}
	refs, err := h.Groups.RefsByIDs(ctx, groupIDs)
	if err != nil {
		h.Log.Error("group resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to fetch users")
		return
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		v := userView{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Contact:      u.Contact,
			Role:         u.Role,
			Status:       u.Status,
			GroupsJoined: make([]models.GroupRef, 0, len(u.GroupsJoined)),
			CreatedAt:    u.CreatedAt,
		}
		for _, gid := range u.GroupsJoined {
			// Stale references left by a deleted group are dropped.
			if ref, ok := refs[gid]; ok {
				v.GroupsJoined = append(v.GroupsJoined, ref)
			}
		}
		views = append(views, v)
	}

	httpjson.Respond(w, http.StatusOK, views)
}

// HandleSuspend serves PUT /admin/users/{id}/suspend. A suspended user is
// rejected on their next authenticated request even while their token is
// still valid.
func (h *Handler) HandleSuspend(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, status.Suspended, "user suspended")
}

// HandleReinstate serves PUT /admin/users/{id}/reinstate.
func (h *Handler) HandleReinstate(w http.ResponseWriter, r *http.Request) {
	h.setStatus(w, r, status.Active, "user reinstated")
}

func (h *Handler) setStatus(w http.ResponseWriter, r *http.Request, stat, message string) {
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.SetStatus(ctx, userID, stat)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("user status update failed",
			zap.String("user_id", userID.Hex()),
			zap.String("status", stat),
			zap.Error(err))
		httpjson.ServerError(w, "failed to update user")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": message,
		"user":    u,
	})
}
