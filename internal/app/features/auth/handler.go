// internal/app/features/auth/handler.go

// Package authfeature serves registration and login: it validates
// credentials against the user directory and issues identity tokens.
package authfeature

import (
	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

// NewHandler constructs the auth Handler. It is called from the bootstrap
// BuildHandler function, where the database and token manager are already
// initialized.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Tokens: tokens,
		Log:    logger,
	}
}
