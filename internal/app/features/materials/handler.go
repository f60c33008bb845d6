// internal/app/features/materials/handler.go

// Package materials serves file attachments for groups: multipart upload
// into the GridFS bucket, member-only listing, and public download.
package materials

import (
	"github.com/brainhive/brainhive/internal/app/store/files"
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the dependency container for the materials feature.
type Handler struct {
	Groups *groupstore.Store
	Users  *userstore.Store
	Files  *filestore.Store
	Log    *zap.Logger

	// MaxUploadBytes caps a single multipart upload.
	MaxUploadBytes int64
}

// NewHandler constructs the materials Handler.
func NewHandler(db *mongo.Database, maxUploadBytes int64, logger *zap.Logger) (*Handler, error) {
	files, err := filestore.New(db)
	if err != nil {
		return nil, err
	}
	return &Handler{
		Groups:         groupstore.New(db),
		Users:          userstore.New(db),
		Files:          files,
		Log:            logger,
		MaxUploadBytes: maxUploadBytes,
	}, nil
}
