package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "backend", "uploads")
	store := NewLocalStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "a.png", []byte("hello")))

	data, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalStoreOpenAndRemove(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "b.jpeg", []byte("jpeg-bytes")))

	obj, err := store.Open(ctx, "b.jpeg")
	require.NoError(t, err)
	body, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.NoError(t, obj.Close())
	assert.Equal(t, "jpeg-bytes", string(body))
	assert.Equal(t, int64(len("jpeg-bytes")), obj.Size)
	assert.Equal(t, "image/jpeg", obj.ContentType)

	require.NoError(t, store.Remove(ctx, "b.jpeg"))
	assert.NoFileExists(t, store.Path("b.jpeg"))

	_, err = store.Open(ctx, "b.jpeg")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Remove(ctx, "b.jpeg"), ErrNotFound)
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store := NewLocalStore(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", ".", "..", "../x.png", "a/b.png", `a\b.png`} {
		assert.ErrorIs(t, store.Save(ctx, name, []byte("x")), ErrInvalidName, name)
		_, err := store.Open(ctx, name)
		assert.ErrorIs(t, err, ErrInvalidName, name)
	}
}
