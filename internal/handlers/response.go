package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// APIResponse is the envelope of the checkout API
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	OrderID uint   `json:"order_id,omitempty"`
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a failed APIResponse
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	WriteJSON(w, status, APIResponse{Success: false, Message: message}, logger)
}
