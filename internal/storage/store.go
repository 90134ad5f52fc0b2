// Package storage keeps uploaded images. Rows reference images by the key a Store returns;
// keys are generated, so two uploads with the same original file name never collide.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/dogao/cardapio/internal/models"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrInvalidKey      = errors.New("invalid image key")
)

// Store saves and deletes uploaded images
type Store interface {
	// Save stores the content read from r and returns the key to reference it by.
	// filename is the client-supplied name and only contributes its extension.
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
	// URL returns the address browsers fetch the image from
	URL(key string) string
}

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

// NewKey generates a unique key keeping the lower-cased extension of filename
func NewKey(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}
	return uuid.NewString() + ext, nil
}

// ValidKey reports whether key is a bare file name that cannot escape the store
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, `/\`) && !strings.Contains(key, "..")
}

// PublicURL resolves an image reference stored on a row to a browser address.
// External http(s) references are returned unchanged.
func PublicURL(s Store, ref string) string {
	if ref == "" {
		return ""
	}
	if models.IsExternalImage(ref) {
		return ref
	}
	return s.URL(ref)
}
