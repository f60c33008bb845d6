// internal/app/features/notify/handler.go

// Package notify triggers the group announcement email: one message to
// every member of a group telling them to check for updates.
package notify

import (
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/store/users"
	"github.com/brainhive/brainhive/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the notify feature.
type Handler struct {
	Groups   *groupstore.Store
	Users    *userstore.Store
	Mail     *mailer.Mailer
	SiteName string
	Log      *zap.Logger
}

// NewHandler constructs the notify Handler.
func NewHandler(db *mongo.Database, mail *mailer.Mailer, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Groups:   groupstore.New(db),
		Users:    userstore.New(db),
		Mail:     mail,
		SiteName: siteName,
		Log:      logger,
	}
}
