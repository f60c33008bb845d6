// internal/app/features/admin/handler.go

// Package admin serves the admin-only user directory: listing all accounts
// and flipping them between active and suspended.
package admin

import (
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the admin feature.
type Handler struct {
	Users  *userstore.Store
	Groups *groupstore.Store
	Log    *zap.Logger
}

// NewHandler constructs the admin Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Groups: groupstore.New(db),
		Log:    logger,
	}
}
