// internal/app/store/users/fetcher.go
package userstore

import (
	"context"

	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/status"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Fetcher implements auth.UserFetcher to load fresh account state on each
// request. Suspensions and role changes take effect immediately, regardless
// of how long an already-issued token remains valid.
type Fetcher struct {
	users *mongo.Collection
}

// NewFetcher creates a UserFetcher that queries the given database.
func NewFetcher(db *mongo.Database) *Fetcher {
	return &Fetcher{users: db.Collection("users")}
}

// FetchUser retrieves a user by ID and returns nil if the user is not
// found, suspended, or if any error occurs.
func (f *Fetcher) FetchUser(ctx context.Context, userID string) *auth.Identity {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	var u struct {
		Role   string `bson:"role"`
		Status string `bson:"status"`
	}
	proj := options.FindOne().SetProjection(bson.M{"role": 1, "status": 1})
	if err := f.users.FindOne(ctx, bson.M{"_id": oid}, proj).Decode(&u); err != nil {
		return nil
	}

	if u.Status == status.Suspended {
		return nil
	}

	return &auth.Identity{ID: userID, Role: u.Role}
}
