// internal/app/features/profile/update.go
package profile

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/htmlsanitize"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type updateInfoRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HandleUpdateInfo serves PUT /user/update-info: the signed-in user changes
// their own display name and/or email.
func (h *Handler) HandleUpdateInfo(w http.ResponseWriter, r *http.Request) {
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

	var req updateInfoRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.UpdateInfo(ctx, userID, htmlsanitize.Sanitize(req.Name), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrNotFound):
			httpjson.NotFound(w, "user not found")
		case errors.Is(err, userstore.ErrDuplicateEmail):
			httpjson.BadRequest(w, "a user with this email already exists")
		default:
			h.Log.Error("user info update failed", zap.Error(err))
			httpjson.ServerError(w, "failed to update user info")
		}
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "User info updated",
		"user":    user,
	})
}

type profilePicRequest struct {
	Image string `json:"image"`
}

// HandleProfilePic serves PUT /user/profile-pic: stores a base64 data URI
// or image URL on the signed-in user's record.
func (h *Handler) HandleProfilePic(w http.ResponseWriter, r *http.Request) {
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

	var req profilePicRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		httpjson.BadRequest(w, "image is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetProfilePic(ctx, userID, req.Image); err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.NotFound(w, "user not found")
			return
		}
		h.Log.Error("profile picture update failed", zap.Error(err))
		httpjson.ServerError(w, "failed to update profile picture")
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]string{
		"message": "Profile picture updated successfully",
	})
}
