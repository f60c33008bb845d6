// internal/app/features/auth/register.go
package authfeature

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/htmlsanitize"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/domain/models"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Contact  string `json:"contact"`
	Role     string `json:"role"`
}

// HandleRegister serves POST /users/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpjson.Decode(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpjson.BadRequest(w, "name, email, and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:     htmlsanitize.Sanitize(req.Name),
		Email:    req.Email,
		Password: req.Password,
		Contact:  htmlsanitize.Sanitize(req.Contact),
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.BadRequest(w, "user already exists")
			return
		}
		h.Log.Error("registration failed", zap.Error(err))
		httpjson.ServerError(w, "server error during registration")
		return
	}

	token, _, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err), zap.String("user_id", user.ID.Hex()))
		httpjson.ServerError(w, "server error during registration")
		return
	}

	h.Log.Info("user registered", zap.String("user_id", user.ID.Hex()))

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"token":   token,
		"role":    user.Role,
		"user":    user,
	})
}
