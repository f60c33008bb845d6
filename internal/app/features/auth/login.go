// internal/app/features/auth/login.go
package authfeature

import (
	"context"
	"errors"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/status"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin serves POST /login.
//
// Credentials are compared against the stored values exactly; suspended
// accounts are rejected with 403 even when the password matches.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, userstore.ErrNotFound) {
			httpjson.Unauthorized(w, "invalid credentials")
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		httpjson.ServerError(w, "server error during login")
		return
	}

	if user.Password != req.Password {
		httpjson.Unauthorized(w, "invalid credentials")
		return
	}

	if user.Status == status.Suspended {
		httpjson.Forbidden(w, "your account has been suspended by admin")
		return
	}

	token, _, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.ServerError(w, "server error during login")
		return
	}

	h.Log.Info("user logged in", zap.String("user_id", user.ID.Hex()), zap.String("role", user.Role))

	httpjson.Respond(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"token":   token,
		"role":    user.Role,
		"user":    user,
	})
}
