package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dogao/cardapio/internal/testutil"
	"github.com/dogao/cardapio/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestUploadHandler_Serve(t *testing.T) {
	store := testutil.NewStore(t)
	key, err := store.Save(context.Background(), "foto.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/uploads/{filename}", NewUploadHandler(store, logger.Discard()).Serve)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{"existing file", "/uploads/" + key, http.StatusOK, "png-bytes"},
		{"missing file", "/uploads/nope.png", http.StatusNotFound, ""},
		{"dot dot", "/uploads/..", http.StatusNotFound, ""},
		{"encoded traversal", "/uploads/..%2Fcardapio.db", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedBody != "" && w.Body.String() != tt.expectedBody {
				t.Errorf("body = %q, want %q", w.Body.String(), tt.expectedBody)
			}
		})
	}
}

// remoteStore stands in for a store whose images live on another host
type remoteStore struct{}

func (remoteStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	return "remote.png", nil
}

func (remoteStore) Delete(ctx context.Context, key string) error { return nil }

func (remoteStore) URL(key string) string { return "https://cdn.example/" + key }

func TestUploadHandler_RedirectsForRemoteStore(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/uploads/{filename}", NewUploadHandler(remoteStore{}, logger.Discard()).Serve)

	req := httptest.NewRequest(http.MethodGet, "/uploads/abc.png", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusFound)
	}
	if loc := w.Header().Get("Location"); loc != "https://cdn.example/abc.png" {
		t.Errorf("Location = %q", loc)
	}
}
