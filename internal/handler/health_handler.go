package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// HealthChecker is satisfied by the database handle and the queue client
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db          HealthChecker
	queueClient HealthChecker
	customers   int
	logger      *slog.Logger
}

// NewHealthHandler creates a new health handler. db is nil unless the dataset
// was read from Postgres; queueClient is nil when the queue is disabled.
func NewHealthHandler(db, queueClient HealthChecker, customers int, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		db:          db,
		queueClient: queueClient,
		customers:   customers,
		logger:      logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Customers int               `json:"customers"`
	Services  map[string]string `json:"services"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Customers: h.customers,
		Services:  make(map[string]string),
	}

	if h.db != nil {
		if err := h.db.Health(ctx); err != nil {
			h.logger.Error("database health check failed", slog.String("error", err.Error()))
			response.Status = "unhealthy"
			response.Services["database"] = "unhealthy"
		} else {
			response.Services["database"] = "healthy"
		}
	} else {
		response.Services["database"] = "not_configured"
	}

	if h.queueClient != nil {
		if err := h.queueClient.Health(ctx); err != nil {
			h.logger.Error("queue health check failed", slog.String("error", err.Error()))
			response.Status = "unhealthy"
			response.Services["queue"] = "unhealthy"
		} else {
			response.Services["queue"] = "healthy"
		}
	} else {
		response.Services["queue"] = "not_configured"
	}

	if response.Status == "healthy" {
		respondSuccess(w, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
