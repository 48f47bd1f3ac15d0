package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskflowhq/projectd/internal/nats"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db   *pgxpool.Pool
	nats *nats.Client
}

// NewHealthHandler creates a new HealthHandler. nats may be nil when eventing
// is disabled.
func NewHealthHandler(db *pgxpool.Pool, nats *nats.Client) *HealthHandler {
	return &HealthHandler{db: db, nats: nats}
}

// Health is a simple liveness probe.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready is a readiness probe that checks dependencies.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":   "ready",
		"database": "connected",
	}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		response["status"] = "not_ready"
		response["database"] = "disconnected"
		status = http.StatusServiceUnavailable
	}

	if h.nats != nil {
		response["nats"] = "connected"
		if !h.nats.IsConnected() {
			response["status"] = "not_ready"
			response["nats"] = "disconnected"
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, status, response)
}
