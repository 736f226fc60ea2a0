package blob_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedline/service/internal/blob"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	payload := []byte("not really a video")
	id, err := store.Upload(ctx, bytes.NewReader(payload), blob.Info{
		Filename:    "clip.mp4",
		ContentType: "video/mp4",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	exists, err := store.Exists(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, info, err := store.Download(ctx, id)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "clip.mp4", info.Filename)
	assert.Equal(t, "video/mp4", info.ContentType)
	assert.Equal(t, int64(len(payload)), info.Size)
}

func TestMemoryStoreInvalidID(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	_, _, err := store.Download(ctx, "definitely-not-a-uuid")
	assert.ErrorIs(t, err, blob.ErrInvalidID)

	_, err = store.Exists(ctx, "definitely-not-a-uuid")
	assert.ErrorIs(t, err, blob.ErrInvalidID)

	err = store.Delete(ctx, "definitely-not-a-uuid")
	assert.ErrorIs(t, err, blob.ErrInvalidID)
}

func TestMemoryStoreDownloadUnknown(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	_, _, err := store.Download(ctx, "0e7b1a43-55f1-4f6e-9a3c-1f2d3e4a5b6c")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestMemoryStoreDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := blob.NewMemoryStore()

	id, err := store.Upload(ctx, bytes.NewReader([]byte("x")), blob.Info{Filename: "x.png"})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, id))
	// Deleting an already-absent blob is not an error.
	require.NoError(t, store.Delete(ctx, id))

	_, _, err = store.Download(ctx, id)
	assert.ErrorIs(t, err, blob.ErrNotFound)
}
