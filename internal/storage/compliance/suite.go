// Package compliance holds the behavioral test suite every BlobStore
// implementation must pass.
package compliance

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/taskpad/internal/storage"
)

// RunBlobStoreComplianceTest runs the shared suite against a backend.
// newStore returns a fresh store and a cleanup function.
func RunBlobStoreComplianceTest(t *testing.T, newStore func() (storage.BlobStore, func())) {
	t.Helper()

	t.Run("SaveAndOpenRoundTrip", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		ctx := context.Background()

		content := []byte("\x89PNG\r\n\x1a\nnot really a png")
		require.NoError(t, store.Save(ctx, "avatar-1.png", bytes.NewReader(content)))

		r, err := store.Open(ctx, "avatar-1.png")
		require.NoError(t, err)
		defer r.Close()

		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "task.jpg", bytes.NewReader([]byte("first"))))
		require.NoError(t, store.Save(ctx, "task.jpg", bytes.NewReader([]byte("second"))))

		r, err := store.Open(ctx, "task.jpg")
		require.NoError(t, err)
		defer r.Close()

		got, err := io.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("OpenMissing", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()

		_, err := store.Open(context.Background(), "no-such-blob.png")
		require.Error(t, err)
		assert.True(t, errors.Is(err, storage.ErrBlobNotFound))
	})

	t.Run("Delete", func(t *testing.T) {
		store, cleanup := newStore()
		defer cleanup()
		ctx := context.Background()

		require.NoError(t, store.Save(ctx, "gone.png", bytes.NewReader([]byte("x"))))
		require.NoError(t, store.Delete(ctx, "gone.png"))

		_, err := store.Open(ctx, "gone.png")
		assert.True(t, errors.Is(err, storage.ErrBlobNotFound))

		err = store.Delete(ctx, "gone.png")
		assert.True(t, errors.Is(err, storage.ErrBlobNotFound))
	})
}
