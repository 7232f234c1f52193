package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezkam/taskpad/internal/storage"
)

// Store is a filesystem-based implementation of storage.BlobStore.
// Blobs live as flat files under baseDir, which is also the directory the
// HTTP server exposes at /uploads.
type Store struct {
	baseDir string
}

// NewStore creates a new filesystem store, creating baseDir if needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Dir returns the directory blobs are stored in.
func (s *Store) Dir() string {
	return s.baseDir
}

// path resolves a blob name inside baseDir, rejecting names that would
// escape it.
func (s *Store) path(name string) (string, error) {
	cleaned := filepath.Base(filepath.Clean(name))
	if cleaned == "." || cleaned == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid blob name: %q", name)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}

// Save writes the blob to a temporary file and renames it into place so
// readers never observe a partial write.
func (s *Store) Save(ctx context.Context, name string, r io.Reader) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.baseDir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move blob into place: %w", err)
	}
	return nil
}

// Open returns a reader for the named blob.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}
	return f, nil
}

// Delete removes the named blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", storage.ErrBlobNotFound, name)
		}
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
