// Package grouppolicy centralizes the authorization predicates for group
// operations, so the policy is auditable in one place instead of scattered
// across handlers.
//
// Authorization rules:
//   - Admins moderate groups (approve/reject/delete) and the user directory
//   - Only current members may post messages, upload and list materials
//   - A message may be edited or deleted by its author or any admin;
//     authorship is NOT re-validated against current membership, so an
//     author who has left the group keeps edit/delete rights over their
//     old messages
package grouppolicy

import (
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CanModerate reports whether the identity may approve, reject or delete
// groups and manage the user directory.
func CanModerate(ident *auth.Identity) bool {
	return ident.IsAdmin()
}

// CanPostMessage reports whether the identity may append a message to the
// group.
func CanPostMessage(g *models.Group, userID primitive.ObjectID) bool {
	return g.HasMember(userID)
}

// CanModifyMessage reports whether the identity may edit or delete the
// message. Membership is deliberately not consulted.
func CanModifyMessage(m *models.Message, ident *auth.Identity) bool {
	if ident.IsAdmin() {
		return true
	}
	return m.AuthorID.Hex() == ident.ID
}

// CanUploadMaterial reports whether the identity may attach a file to the
// group.
func CanUploadMaterial(g *models.Group, userID primitive.ObjectID) bool {
	return g.HasMember(userID)
}

// CanListMaterials reports whether the identity may read the group's
// material list.
func CanListMaterials(g *models.Group, userID primitive.ObjectID) bool {
	return g.HasMember(userID)
}
