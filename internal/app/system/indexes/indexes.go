// internal/app/system/indexes/indexes.go

// Package indexes creates the MongoDB indexes the application relies on.
// EnsureAll is called once at startup from the bootstrap schema hook.
package indexes

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll creates every required index. Index creation is idempotent:
// existing identical indexes are left untouched.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	// Email uniqueness backs the registration invariant.
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_email"),
	})
	if err != nil {
		return err
	}

	// Membership lookups: profile scatter-gather filters groups by member.
	_, err = db.Collection("groups").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "members", Value: 1}},
		Options: options.Index().SetName("members_lookup"),
	})
	if err != nil {
		return err
	}

	// Latest-revision file lookups by name.
	_, err = db.Collection("uploads.files").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "filename", Value: 1}, {Key: "uploadDate", Value: -1}},
		Options: options.Index().SetName("filename_latest"),
	})
	if err != nil {
		return err
	}

	logger.Info("indexes ensured",
		zap.String("database", db.Name()))
	return nil
}
