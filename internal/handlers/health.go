package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	ping   func(ctx context.Context) error
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler. ping checks the database.
func NewHealthHandler(ping func(ctx context.Context) error, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		ping:   ping,
		logger: logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Database:  "up",
	}
	status := http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.ping(ctx); err != nil {
		h.logger.Error("database health check failed", "error", err)
		response.Status = "unhealthy"
		response.Database = "down"
		status = http.StatusServiceUnavailable
	}

	WriteJSON(w, status, response, h.logger)
}
