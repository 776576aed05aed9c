package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdrianislam0or1/admin-dashboard/storage"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, storage.KeyUser, "u"))
	got, err := s.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, "u", got)

	require.NoError(t, s.Delete(ctx, storage.KeyUser))
	assert.Equal(t, 0, s.Len())
}

func TestConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Set(ctx, storage.KeyToken, "tok")
			_, _ = s.Get(ctx, storage.KeyToken)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok", got)
}
