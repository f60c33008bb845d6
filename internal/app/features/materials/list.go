// internal/app/features/materials/list.go
package materials

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/brainhive/brainhive/internal/app/policy/grouppolicy"
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// MaterialView is a material record with its uploader resolved.
type MaterialView struct {
	Filename   string             `json:"filename"`
	FileID     primitive.ObjectID `json:"fileId"`
	UploadedBy *models.UserRef    `json:"uploadedBy"`
	UploadedAt time.Time          `json:"uploadedAt"`
}

// HandleList serves GET /api/materials/{id}/materials (member only).
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident := auth.CurrentUser(r)
	if ident == nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(ident.ID)
	if err != nil {
		httpjson.Unauthorized(w, "sign in required")
		return
	}

	groupID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid group id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to list materials")
		return
	}

	if !grouppolicy.CanListMaterials(&g, userID) {
		httpjson.Forbidden(w, "only members can view materials")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(g.Materials))
	for _, m := range g.Materials {
		ids = append(ids, m.UploadedBy)
	}
	refs, err := h.Users.RefsByIDs(ctx, ids)
	if err != nil {
		h.Log.Error("uploader resolve failed", zap.Error(err))
		httpjson.ServerError(w, "failed to list materials")
		return
	}

	views := make([]MaterialView, 0, len(g.Materials))
	for _, m := range g.Materials {
		v := MaterialView{
			Filename:   m.Filename,
			FileID:     m.FileID,
			UploadedAt: m.UploadedAt,
		}
		if ref, ok := refs[m.UploadedBy]; ok {
			v.UploadedBy = &ref
		}
		views = append(views, v)
	}

	httpjson.Respond(w, http.StatusOK, views)
}
