// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a registered account.
//
// NOTE:
//   - Email is unique across all users and compared exactly as stored
//     (no case folding).
//   - Password is stored verbatim and never serialized to JSON.
//   - GroupsJoined is the user's side of the bidirectional membership
//     relation; the group document holds the authoritative member list.
type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Contact  string             `bson:"contact,omitempty" json:"contact,omitempty"`
	Password string             `bson:"password" json:"-"`

	Role   string `bson:"role" json:"role"`
	Status string `bson:"status" json:"status"`

	// ProfilePic holds a base64 data URI or an image URL.
	ProfilePic string `bson:"profile_pic,omitempty" json:"profilePic,omitempty"`

	GroupsJoined []primitive.ObjectID `bson:"groups_joined" json:"groupsJoined"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasJoined reports whether the user's joined-groups set references the group.
func (u *User) HasJoined(groupID primitive.ObjectID) bool {
	for _, id := range u.GroupsJoined {
		if id == groupID {
			return true
		}
	}
	return false
}

// UserRef is the resolved projection of a user embedded in group and
// material responses.
type UserRef struct {
	ID    primitive.ObjectID `bson:"_id" json:"id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
}
