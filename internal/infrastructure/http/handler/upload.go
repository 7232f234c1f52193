package handler

import (
	"context"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
)

// maxMultipartMemory bounds how much of a multipart body is held in memory
// while parsing; the rest spills to temporary files.
const maxMultipartMemory = 8 << 20

// saveUpload stores an uploaded file under a generated name that keeps the
// original extension, and returns the serving path persisted in the
// database.
func (s *Server) saveUpload(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + filepath.Ext(fh.Filename)

	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.ErrorContext(ctx, "failed to close uploaded file", "error", err)
		}
	}()

	if err := s.blobs.Save(ctx, name, f); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}

	return "/uploads/" + name, nil
}
