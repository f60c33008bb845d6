// internal/app/store/groups/groupstore.go

// Package groupstore persists the group aggregate: the group document with
// its embedded message and material sub-documents. All sub-document
// mutations go through Mongo update operators against the parent record so
// the aggregate is the single unit of write.
package groupstore

import (
	"context"
	"errors"
	"time"

	"github.com/brainhive/brainhive/internal/app/system/normalize"
	"github.com/brainhive/brainhive/internal/app/system/status"
	"github.com/brainhive/brainhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var (
	// ErrNotFound is returned when the targeted group does not exist.
	ErrNotFound = errors.New("group not found")
	// ErrMessageNotFound is returned when the targeted embedded message is
	// absent from the group.
	ErrMessageNotFound = errors.New("message not found")
	// ErrValidation is returned when required group fields are missing.
	ErrValidation = errors.New("title, subject and description are required")

	errBadStatus = errors.New(`status must be "pending"|"approved"|"rejected"`)
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// GetByID loads the full aggregate. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Group{}, ErrNotFound
		}
		return models.Group{}, err
	}
	return g, nil
}

// List returns all groups, newest first.
func (s *Store) List(ctx context.Context) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// ListByMember returns the groups whose member list contains the user,
// newest first. Used by the profile scatter-gather read.
func (s *Store) ListByMember(ctx context.Context, userID primitive.ObjectID) ([]models.Group, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"members": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var groups []models.Group
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// RefsByIDs resolves group ids to {id, title} projections. Unknown ids are
// simply absent from the result map, which lets callers skip the stale
// references a hard group delete leaves on users.
func (s *Store) RefsByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.GroupRef, error) {
	refs := make(map[primitive.ObjectID]models.GroupRef, len(ids))
	if len(ids) == 0 {
		return refs, nil
	}

	proj := options.Find().SetProjection(bson.M{"title": 1})
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, proj)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var ref models.GroupRef
		if err := cur.Decode(&ref); err != nil {
			return nil, err
		}
		refs[ref.ID] = ref
	}
	return refs, cur.Err()
}

// Create inserts a new group with status pending and the creator as the
// first member. Returns ErrValidation when a required field is empty after
// trimming.
func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.Title = normalize.Text(g.Title)
	g.Subject = normalize.Text(g.Subject)
	g.Description = normalize.Text(g.Description)
	if g.Title == "" || g.Subject == "" || g.Description == "" {
		return models.Group{}, ErrValidation
	}

	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	if g.Status == "" {
		g.Status = status.Pending
	}
	g.Members = []primitive.ObjectID{g.CreatedBy}
	g.Messages = []models.Message{}
	g.Materials = []models.Material{}
	g.CreatedAt = now
	g.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// SetStatus records a moderation transition. Transitions are unguarded:
// any of the three statuses may be set at any time.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, stat string) error {
	if !status.IsValidGroup(stat) {
		return errBadStatus
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     stat,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the group document outright. Blobs referenced by its
// materials and member back-references on users are not cleaned up.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMember appends the user to the member list. $addToSet makes the write
// idempotent: joining twice leaves a single entry.
func (s *Store) AddMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$addToSet": bson.M{"members": userID},
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

// RemoveMember pulls the user from the member list. Removing a non-member
// is a no-op success.
func (s *Store) RemoveMember(ctx context.Context, groupID, userID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"members": userID},
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

// AppendMessage adds a message to the end of the embedded sequence and
// returns it with its assigned sub-document id and server timestamp.
func (s *Store) AppendMessage(ctx context.Context, groupID, authorID primitive.ObjectID, text string) (models.Message, error) {
	msg := models.Message{
		ID:        primitive.NewObjectID(),
		Text:      text,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return models.Message{}, err
	}
	if res.MatchedCount == 0 {
		return models.Message{}, ErrNotFound
	}
	return msg, nil
}

// UpdateMessageText replaces an embedded message's text by sub-document id.
// The creation timestamp is left unchanged.
func (s *Store) UpdateMessageText(ctx context.Context, groupID, messageID primitive.ObjectID, text string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": groupID, "messages._id": messageID},
		bson.M{"$set": bson.M{
			"messages.$.text": text,
			"updated_at":      time.Now().UTC(),
		}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// RemoveMessage deletes an embedded message by sub-document id.
func (s *Store) RemoveMessage(ctx context.Context, groupID, messageID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$pull": bson.M{"messages": bson.M{"_id": messageID}},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// AppendMaterial records an uploaded blob on the group. Materials are
// append-only and never edited or removed.
func (s *Store) AppendMaterial(ctx context.Context, groupID primitive.ObjectID, m models.Material) error {
	res, err := s.c.UpdateByID(ctx, groupID, bson.M{
		"$push": bson.M{"materials": m},
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
