package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"rentit/internal/config"
)

func TestLocalStorageUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewLocalStorage(dir, "http://localhost:4000/uploads/")
	require.NoError(t, err)

	resp, err := store.Upload(ctx, &UploadRequest{
		Key:    "thumbs/123-abc.png",
		Reader: strings.NewReader("image-bytes"),
	})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:4000/uploads/thumbs/123-abc.png", resp.URL)
	require.EqualValues(t, len("image-bytes"), resp.Size)

	data, err := os.ReadFile(filepath.Join(dir, "thumbs", "123-abc.png"))
	require.NoError(t, err)
	require.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, "thumbs/123-abc.png"))
	_, err = os.Stat(filepath.Join(dir, "thumbs", "123-abc.png"))
	require.True(t, os.IsNotExist(err))

	// deleting twice is fine
	require.NoError(t, store.Delete(ctx, "thumbs/123-abc.png"))
}

func TestLocalStorageRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(filepath.Join(dir, "uploads"), "http://x")
	require.NoError(t, err)

	resp, err := store.Upload(context.Background(), &UploadRequest{
		Key:    "../../escape.png",
		Reader: strings.NewReader("x"),
	})
	require.NoError(t, err)

	// the key is confined to the base path
	_, statErr := os.Stat(filepath.Join(dir, "uploads", "escape.png"))
	require.NoError(t, statErr)
	require.NotEmpty(t, resp.URL)

	_, err = store.Upload(context.Background(), &UploadRequest{Key: "", Reader: strings.NewReader("x")})
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewProviderLocal(t *testing.T) {
	cfg := &config.StorageConfig{
		Provider: config.StorageProviderLocal,
		Local:    &config.LocalStorageConfig{BasePath: t.TempDir(), BaseURL: "http://x"},
	}

	provider, err := NewProvider(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &LocalStorage{}, provider)

	cfg.Provider = "ftp"
	_, err = NewProvider(context.Background(), cfg)
	require.Error(t, err)
}

func TestCloudinaryPublicID(t *testing.T) {
	require.Equal(t, "items/123-abc", publicID("items/123-abc.jpg"))
	require.Equal(t, "noext", publicID("noext"))
}
