package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskImageStore_Save(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskImageStore(dir)

	data := bytes.Repeat([]byte{0xAB}, 15)
	id, err := store.Save(context.Background(), "laptop-1", ".jpg", data)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, id+".jpg"))
	require.NoError(t, err)
	assert.Equal(t, data, written)

	img, ok := store.Find(id)
	require.True(t, ok)
	assert.Equal(t, "laptop-1", img.LaptopID)
	assert.Equal(t, 15, img.Size)

	// no temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestDiskImageStore_UniqueIDs(t *testing.T) {
	store := NewDiskImageStore(t.TempDir())
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id, err := store.Save(ctx, "laptop-1", ".png", []byte("x"))
		require.NoError(t, err)
		assert.False(t, seen[id], "duplicate image id %s", id)
		seen[id] = true
	}
}

func TestDiskImageStore_FolderIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	store := NewDiskImageStore(file)
	_, err := store.Save(context.Background(), "laptop-1", ".jpg", []byte("data"))
	assert.Error(t, err)
}

func TestDiskImageStore_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	store := NewDiskImageStore(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "laptop-1", ".jpg", []byte("data"))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
