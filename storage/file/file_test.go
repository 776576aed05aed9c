package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdrianislam0or1/admin-dashboard/storage"
)

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := New(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.KeyToken, "tok-123"))

	got, err := s.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", got)

	require.NoError(t, s.Delete(ctx, storage.KeyToken))
	_, err = s.Get(ctx, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting an absent key is a no-op.
	require.NoError(t, s.Delete(ctx, storage.KeyToken))
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, storage.KeyUser, `{"id":"u1","name":"Rian"}`))
	require.NoError(t, s.Set(ctx, storage.KeyRefreshToken, "ref-1"))
	require.NoError(t, s.Close())

	reopened, err := New(path)
	require.NoError(t, err)

	got, err := reopened.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"u1","name":"Rian"}`, got)

	got, err = reopened.Get(ctx, storage.KeyRefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "ref-1", got)
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := New(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFileModeIsPrivate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	s, err := New(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, storage.KeyToken, "secret"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
