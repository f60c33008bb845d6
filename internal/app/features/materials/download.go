// internal/app/features/materials/download.go
package materials

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/store/files"
	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// HandleDownloadByName serves GET /api/materials/file/{filename}. The match
// is case-sensitive and, when several blobs share the name, the most
// recently uploaded one wins. Retrieval is public.
func (h *Handler) HandleDownloadByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")
	if name == "" {
		httpjson.BadRequest(w, "filename is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	info, err := h.Files.StatLatestByName(ctx, name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			httpjson.NotFound(w, "file not found")
			return
		}
		h.Log.Error("blob stat failed", zap.String("filename", name), zap.Error(err))
		httpjson.ServerError(w, "failed to fetch file")
		return
	}

	h.serveBlob(ctx, w, info)
}

// HandleDownloadByID serves GET /api/materials/blob/{id}: retrieval by the
// blob's own id, immune to later uploads shadowing the filename.
func (h *Handler) HandleDownloadByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "invalid file id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	info, err := h.Files.StatByID(ctx, id)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			httpjson.NotFound(w, "file not found")
			return
		}
		h.Log.Error("blob stat failed", zap.String("blob_id", id.Hex()), zap.Error(err))
		httpjson.ServerError(w, "failed to fetch file")
		return
	}

	h.serveBlob(ctx, w, info)
}

func (h *Handler) serveBlob(ctx context.Context, w http.ResponseWriter, info filestore.FileInfo) {
	contentType := info.Metadata.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Length))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", info.Name))

	if err := h.Files.CopyTo(ctx, info.ID, w); err != nil {
		// Headers are already out; all we can do is log and drop the
		// connection short.
		h.Log.Error("blob stream failed",
			zap.String("blob_id", info.ID.Hex()),
			zap.Error(err))
	}
}
