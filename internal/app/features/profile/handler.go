// internal/app/features/profile/handler.go

// Package profile serves the signed-in user's profile: the aggregated view
// of their account, groups and authored messages, plus profile edits.
package profile

import (
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the profile feature.
type Handler struct {
	Users  *userstore.Store
	Groups *groupstore.Store
	Log    *zap.Logger
}

// NewHandler constructs the profile Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Groups: groupstore.New(db),
		Log:    logger,
	}
}
