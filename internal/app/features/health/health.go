// internal/app/features/health/health.go

// Package health exposes the liveness probe.
package health

import (
	"context"
	"net/http"

	"github.com/brainhive/brainhive/internal/app/system/httpjson"
	"github.com/brainhive/brainhive/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Handler answers health probes. The probe pings Mongo so orchestrators see
// an unhealthy instance when the database is unreachable.
type Handler struct {
	Client *mongo.Client
}

// NewHandler constructs the health Handler.
func NewHandler(client *mongo.Client) *Handler {
	return &Handler{Client: client}
}

// ServeHealthz serves GET /healthz.
func (h *Handler) ServeHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		httpjson.Respond(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"mongo":  err.Error(),
		})
		return
	}

	httpjson.Respond(w, http.StatusOK, map[string]any{"status": "ok"})
}

// Register wires the health route.
func Register(r chi.Router, h *Handler) {
	r.Get("/healthz", h.ServeHealthz)
}
