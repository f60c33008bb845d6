// internal/app/features/groups/types.go
package groups

import (
	"context"
	"time"

	"github.com/brainhive/brainhive/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GroupView is a group with its user references resolved to {id,name,email}
// for the client.
type GroupView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Subject     string             `json:"subject"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	CreatedBy   *models.UserRef    `json:"createdBy"`
	Members     []models.UserRef   `json:"members"`
	Messages    []MessageView      `json:"messages"`
	Materials   []models.Material  `json:"materials"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// MessageView is an embedded message with its author resolved.
type MessageView struct {
	ID        primitive.ObjectID `json:"id"`
	Text      string             `json:"text"`
	Author    *models.UserRef    `json:"author"`
	CreatedAt time.Time          `json:"createdAt"`
}

// viewOf resolves one group's user references.
func (h *Handler) viewOf(ctx context.Context, g models.Group) (GroupView, error) {
	views, err := h.viewsOf(ctx, []models.Group{g})
	if err != nil {
		return GroupView{}, err
	}
	return views[0], nil
}

// viewsOf resolves user references for a set of groups with a single
// directory query.
func (h *Handler) viewsOf(ctx context.Context, gs []models.Group) ([]GroupView, error) {
	seen := map[primitive.ObjectID]struct{}{}
	var ids []primitive.ObjectID
	collect := func(id primitive.ObjectID) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, g := range gs {
		collect(g.CreatedBy)
		for _, m := range g.Members {
			collect(m)
		}
		for _, msg := range g.Messages {
			collect(msg.AuthorID)
		}
	}

	refs, err := h.Users.RefsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	lookup := func(id primitive.ObjectID) *models.UserRef {
		if ref, ok := refs[id]; ok {
			return &ref
		}
		return nil
	}

	views := make([]GroupView, 0, len(gs))
	for _, g := range gs {
		v := GroupView{
			ID:          g.ID,
			Title:       g.Title,
			Subject:     g.Subject,
			Description: g.Description,
			Status:      g.Status,
			CreatedBy:   lookup(g.CreatedBy),
			Members:     make([]models.UserRef, 0, len(g.Members)),
			Messages:    make([]MessageView, 0, len(g.Messages)),
			Materials:   g.Materials,
			CreatedAt:   g.CreatedAt,
			UpdatedAt:   g.UpdatedAt,
		}
		if v.Materials == nil {
			v.Materials = []models.Material{}
		}
		for _, m := range g.Members {
			if ref := lookup(m); ref != nil {
				v.Members = append(v.Members, *ref)
			}
		}
		for _, msg := range g.Messages {
			v.Messages = append(v.Messages, MessageView{
				ID:        msg.ID,
				Text:      msg.Text,
				Author:    lookup(msg.AuthorID),
				CreatedAt: msg.CreatedAt,
			})
		}
		views = append(views, v)
	}
	return views, nil
}
