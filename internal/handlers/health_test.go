package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dogao/cardapio/pkg/logger"
)

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedState  string
	}{
		{"database up", nil, http.StatusOK, "healthy"},
		{"database down", errors.New("connection refused"), http.StatusServiceUnavailable, "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(func(ctx context.Context) error { return tt.pingErr }, logger.Discard())

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			var resp HealthResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp.Status != tt.expectedState {
				t.Errorf("status field = %q, want %q", resp.Status, tt.expectedState)
			}
			if resp.Version != Version {
				t.Errorf("version = %q, want %q", resp.Version, Version)
			}
		})
	}
}
