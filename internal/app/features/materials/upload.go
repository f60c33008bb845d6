// internal/app/features/materials/upload.go
package materials

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"path/filepath"
	"time"

	"github.com/brainhive/brainhive/internal/app/policy/grouppolicy"
	"github.com/brainhive/brainhive/internal/app/store/files"
	"github.com/brainhive/brainhive/internal/app/store/groups"
	"github.com/brainhive/brainhive/internal/app/system/auth"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/metrics"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/brainhive/brainhive/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleUpload serves POST /api/materials/{id}/materials. The blob is
// streamed into the bucket first; the group's material list is appended
// afterwards. A failure between the two leaves an unreferenced blob,
// which the bucket tolerates.
func (h *Handler) HandleUpload(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	g, err := h.Groups.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupstore.ErrNotFound) {
			httpjson.NotFound(w, "group not found")
			return
		}
		h.Log.Error("group fetch failed", zap.Error(err))
		httpjson.ServerError(w, "failed to upload file")
		return
	}

	if !grouppolicy.CanUploadMaterial(&g, userID) {
		httpjson.Forbidden(w, "only members can upload materials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		httpjson.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	blobID, err := h.Files.Put(ctx, header.Filename, filestore.Metadata{
		ContentType: contentType,
		GroupID:     groupID,
		UploadedBy:  userID,
	}, file)
	if err != nil {
		metrics.ObserveBlobUpload("error")
		h.Log.Error("blob upload failed",
			zap.String("group_id", groupID.Hex()),
			zap.String("filename", header.Filename),
			zap.Error(err))
		httpjson.ServerError(w, "failed to upload file")
		return
	}
	metrics.ObserveBlobUpload("ok")

	mat := models.Material{
		Filename:   header.Filename,
		FileID:     blobID,
		UploadedBy: userID,
		UploadedAt: time.Now().UTC(),
	}
	if err := h.Groups.AppendMaterial(ctx, groupID, mat); err != nil {
		h.Log.Error("material append failed",
			zap.String("group_id", groupID.Hex()),
			zap.String("blob_id", blobID.Hex()),
			zap.Error(err))
		httpjson.ServerError(w, "failed to upload file")
		return
	}

	httpjson.Respond(w, http.StatusCreated, map[string]any{
		"message":  "file uploaded",
		"material": mat,
	})
}
