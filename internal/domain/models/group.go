// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is the study-group aggregate. Messages and materials are embedded
// sub-documents owned exclusively by the group: they have no independent
// lifecycle and are read and updated through the parent document.
//
// NOTE:
//   - CreatedBy is immutable after creation and is always the first member.
//   - Members is an ordered set (a user appears at most once).
//   - Status transitions are admin-only and unguarded; pending, approved and
//     rejected are all reachable from each other.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Subject     string             `bson:"subject" json:"subject"`
	Description string             `bson:"description" json:"description"`

	Status    string             `bson:"status" json:"status"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`

	Members   []primitive.ObjectID `bson:"members" json:"members"`
	Messages  []Message            `bson:"messages" json:"messages"`
	Materials []Material           `bson:"materials" json:"materials"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasMember reports whether the user is currently in the member list.
func (g *Group) HasMember(userID primitive.ObjectID) bool {
	for _, id := range g.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// MessageByID returns the embedded message with the given sub-document id,
// or nil if the group holds no such message.
func (g *Group) MessageByID(id primitive.ObjectID) *Message {
	for i := range g.Messages {
		if g.Messages[i].ID == id {
			return &g.Messages[i]
		}
	}
	return nil
}

// Message is a chat entry embedded in a Group. Messages are retained in
// insertion order; edits replace the text only and leave the timestamp as-is.
type Message struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Text      string             `bson:"text" json:"text"`
	AuthorID  primitive.ObjectID `bson:"author_id" json:"authorId"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// Material is an uploaded-file reference embedded in a Group. The bytes live
// in the GridFS blob store under FileID; deleting the group does not remove
// the blob.
type Material struct {
	Filename   string             `bson:"filename" json:"filename"`
	FileID     primitive.ObjectID `bson:"file_id" json:"fileId"`
	UploadedBy primitive.ObjectID `bson:"uploaded_by" json:"uploadedBy"`
	UploadedAt time.Time          `bson:"uploaded_at" json:"uploadedAt"`
}

// GroupRef is the resolved projection of a group embedded in user directory
// responses.
type GroupRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Title string             `bson:"title" json:"title"`
}
