package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsflix/internal/infra/adapter/persistence/file"
)

func TestPreferenceRepo_GetMissing(t *testing.T) {
	repo := file.NewPreferenceRepo(t.TempDir())

	got, found, err := repo.Get(context.Background(), "newsflix.filters")

	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestPreferenceRepo_PutThenGet(t *testing.T) {
	// Arrange
	dir := filepath.Join(t.TempDir(), "state")
	repo := file.NewPreferenceRepo(dir)
	ctx := context.Background()

	// Act
	require.NoError(t, repo.Put(ctx, "newsflix.filters", []byte(`{"category":"Sports","language":"en-us"}`)))
	got, found, err := repo.Get(ctx, "newsflix.filters")

	// Assert
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `{"category":"Sports","language":"en-us"}`, string(got))

	info, err := os.Stat(filepath.Join(dir, "newsflix.filters.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestPreferenceRepo_Overwrite(t *testing.T) {
	repo := file.NewPreferenceRepo(t.TempDir())
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, "k", []byte("first")))
	require.NoError(t, repo.Put(ctx, "k", []byte("second")))
	got, _, err := repo.Get(ctx, "k")

	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestPreferenceRepo_KeyIsSanitized(t *testing.T) {
	dir := t.TempDir()
	repo := file.NewPreferenceRepo(dir)

	require.NoError(t, repo.Put(context.Background(), "../escape", []byte("x")))

	_, err := os.Stat(filepath.Join(dir, ".._escape.json"))
	assert.NoError(t, err)
}

func TestPreferenceRepo_CancelledContext(t *testing.T) {
	repo := file.NewPreferenceRepo(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Put(ctx, "k", []byte("v"))

	assert.ErrorIs(t, err, context.Canceled)
}
