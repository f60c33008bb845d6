// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/brainhive/brainhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates an active test user with the given name, email and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         name,
		Email:        email,
		Contact:      "555-0000",
		Password:     "secret123",
		Role:         role,
		Status:       "active",
		GroupsJoined: []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAdmin creates a test user with the admin role.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, "admin")
}

// CreateSuspendedUser creates a test user whose status is suspended.
func (f *Fixtures) CreateSuspendedUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()

	u := f.CreateUser(ctx, name, email, "user")
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID,
		bson.M{"$set": bson.M{"status": "suspended"}})
	if err != nil {
		f.t.Fatalf("failed to suspend test user: %v", err)
	}
	u.Status = "suspended"
	return u
}

// CreateGroup creates a test group with the given creator and extra members.
// The creator is always the first member.
func (f *Fixtures) CreateGroup(ctx context.Context, title, status string, creator primitive.ObjectID, members ...primitive.ObjectID) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Subject:     "Testing",
		Description: "A group for tests",
		Status:      status,
		CreatedBy:   creator,
		Members:     append([]primitive.ObjectID{creator}, members...),
		Messages:    []models.Message{},
		Materials:   []models.Material{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := f.db.Collection("groups").InsertOne(ctx, group)
	if err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}

	// Keep the bidirectional relation consistent the way the handlers do.
	for _, m := range group.Members {
		_, err := f.db.Collection("users").UpdateByID(ctx, m,
			bson.M{"$addToSet": bson.M{"groups_joined": group.ID}})
		if err != nil {
			f.t.Fatalf("failed to link member to test group: %v", err)
		}
	}

	return group
}

// AddMessage appends a message to a test group and returns it.
func (f *Fixtures) AddMessage(ctx context.Context, groupID, authorID primitive.ObjectID, text string) models.Message {
	f.t.Helper()

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := f.db.Collection("groups").UpdateByID(ctx, groupID,
		bson.M{"$push": bson.M{"messages": msg}})
	if err != nil {
		f.t.Fatalf("failed to add test message: %v", err)
	}
	return msg
}
