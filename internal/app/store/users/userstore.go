// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/brainhive/brainhive/internal/app/system/normalize"
	"github.com/brainhive/brainhive/internal/app/system/status"
	"github.com/brainhive/brainhive/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrDuplicateEmail is returned when a create or update collides with an
	// existing user's email.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	// ErrNotFound is returned when the targeted user does not exist.
	ErrNotFound = errors.New("user not found")

	errBadRole   = errors.New(`role must be "user"|"admin"`)
	errBadStatus = errors.New(`status must be "active"|"suspended"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by exact email match (emails are stored and
// compared case-sensitively). Returns ErrNotFound if absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns every user, newest first.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create inserts a new user after normalizing & validating fields. The
// password is stored exactly as given. Returns ErrDuplicateEmail when the
// unique email index rejects the insert.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role == "" {
		u.Role = "user"
	}
	if u.Status == "" {
		u.Status = status.Active
	}
	if u.GroupsJoined == nil {
		u.GroupsJoined = []primitive.ObjectID{}
	}

	switch u.Role {
	case "user", "admin":
		// ok
	default:
		return models.User{}, errBadRole
	}
	if !status.IsValidUser(u.Status) {
		return models.User{}, errBadStatus
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// UpdateInfo changes the user's display name and email. Empty values leave
// the current field untouched. Returns the updated record.
func (s *Store) UpdateInfo(ctx context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if n := normalize.Name(name); n != "" {
		set["name"] = n
	}
	if e := normalize.Email(email); e != "" {
		set["email"] = e
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		if wafflemongo.IsDup(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return &u, nil
}

// SetProfilePic stores the profile picture string (base64 data URI or URL).
func (s *Store) SetProfilePic(ctx context.Context, id primitive.ObjectID, image string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"profile_pic": image,
		"updated_at":  time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetStatus flips the account status (suspend/reinstate).
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, stat string) (*models.User, error) {
	if !status.IsValidUser(stat) {
		return nil, errBadStatus
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     stat,
		"updated_at": time.Now().UTC(),
	}}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// AddJoinedGroup adds the group to the user's joined-groups set. $addToSet
// keeps the list duplicate-free while preserving insertion order.
func (s *Store) AddJoinedGroup(ctx context.Context, userID, groupID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$addToSet": bson.M{"groups_joined": groupID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RemoveJoinedGroup removes the group from the user's joined-groups set.
// Removing an absent reference is a no-op success.
func (s *Store) RemoveJoinedGroup(ctx context.Context, userID, groupID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, userID, bson.M{
		"$pull": bson.M{"groups_joined": groupID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// RefsByIDs resolves user ids to {id, name, email} projections for
// embedding in group and material responses. Unknown ids are simply absent
// from the result map.
func (s *Store) RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserRef, error) {
	refs := make(map[primitive.ObjectID]models.UserRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	proj := options.Find().SetProjection(bson.M{"name": 1, "email": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ref models.UserRef
		if err := cur.Decode(&ref); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}
	return refs, cur.Err()
}
