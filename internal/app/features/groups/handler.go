// internal/app/features/groups/handler.go

// Package groups serves the group aggregate: creation, listing, membership,
// moderation, and the embedded chat messages.
package groups

import (
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the groups feature. The
// Mongo client is kept alongside the stores so the membership dual-writes
// can run inside a transaction where the deployment supports one.
type Handler struct {
	Client *mongo.Client
	Groups *groupstore.Store
	Users  *userstore.Store
	Log    *zap.Logger
}

// NewHandler constructs the groups Handler. It is called from the bootstrap
// BuildHandler function, where the database and logger are already
// initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Client: db.Client(),
		Groups: groupstore.New(db),
		Users:  userstore.New(db),
		Log:    logger,
	}
}
