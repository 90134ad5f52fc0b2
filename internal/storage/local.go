package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
)

// LocalStore keeps images in a directory on the local filesystem
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir, urlPrefix: "/uploads/"}, nil
}

// Dir returns the upload directory
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes the image to a temporary file and renames it into place
func (s *LocalStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	key, err := NewKey(filename)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return key, nil
}

// Delete removes the image. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Path returns the file path of key inside the upload directory
func (s *LocalStore) Path(key string) (string, error) {
	if !ValidKey(key) {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, key), nil
}

// URL returns the route that serves key
func (s *LocalStore) URL(key string) string {
	return s.urlPrefix + url.PathEscape(key)
}
