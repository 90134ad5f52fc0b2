package handlers

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	"github.com/dogao/cardapio/internal/storage"
	"github.com/go-chi/chi/v5"
)

// UploadHandler serves uploaded images
type UploadHandler struct {
	store  storage.Store
	logger *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(store storage.Store, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// Serve handles GET /uploads/{filename}.
// Local files are streamed from the upload directory; other stores redirect to their delivery URL.
func (h *UploadHandler) Serve(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "filename")
	if !storage.ValidKey(key) {
		http.NotFound(w, r)
		return
	}

	local, ok := h.store.(*storage.LocalStore)
	if !ok {
		http.Redirect(w, r, h.store.URL(key), http.StatusFound)
		return
	}

	path, err := local.Path(key)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			h.logger.Error("failed to open upload", "key", key, "error", err)
		}
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, key, info.ModTime(), f)
}
