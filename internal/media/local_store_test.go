package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	body := "not really a jpeg"

	url, err := store.Put(ctx, "gallery/abc.jpg", "image/jpeg", strings.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "/media/gallery/abc.jpg", url)

	data, err := os.ReadFile(filepath.Join(dir, "gallery", "abc.jpg"))
	require.NoError(t, err)
	assert.Equal(t, body, string(data))

	// No temporary files are left behind
	entries, err := os.ReadDir(filepath.Join(dir, "gallery"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, store.Delete(ctx, "gallery/abc.jpg"))
	_, err = os.Stat(filepath.Join(dir, "gallery", "abc.jpg"))
	assert.True(t, os.IsNotExist(err))

	// Deleting again is not an error
	assert.NoError(t, store.Delete(ctx, "gallery/abc.jpg"))
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	keys := []string{"../outside.jpg", "gallery/../../outside.jpg", "/etc/passwd", ""}

	for _, key := range keys {
		t.Run(key, func(t *testing.T) {
			_, err := store.Put(ctx, key, "image/jpeg", strings.NewReader("x"), 1)
			assert.Error(t, err)

			assert.Error(t, store.Delete(ctx, key))
		})
	}
}

func TestNewLocalStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "media")

	_, err := NewLocalStore(dir, zerolog.Nop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
