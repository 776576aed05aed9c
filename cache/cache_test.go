package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, opts ...Option) *Cache {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func countingFetch(calls *atomic.Int32, value any) Fetch {
	return func(ctx context.Context) (any, error) {
		calls.Add(1)
		return value, nil
	}
}

func TestQueryCachesResult(t *testing.T) {
	c := newTestCache(t)
	key := NewKey("Article", "limit=10&page=1")

	var calls atomic.Int32
	fetch := countingFetch(&calls, "page-one")

	data, err := c.Query(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "page-one", data)

	data, err = c.Query(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, "page-one", data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQuerySameContentDifferentOrderSharesEntry(t *testing.T) {
	c := newTestCache(t)

	// Callers canonicalize parameters before building the key, so both
	// orderings produce the same query string.
	a := NewKey("Article", "page=1&status=draft")
	b := NewKey("Article", "page=1&status=draft")

	var calls atomic.Int32
	_, err := c.Query(context.Background(), a, countingFetch(&calls, "x"))
	require.NoError(t, err)
	_, err = c.Query(context.Background(), b, countingFetch(&calls, "x"))
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestConcurrentQueriesShareOneFetch(t *testing.T) {
	c := newTestCache(t)
	key := NewKey("Analytics", "")

	var calls atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "stats", nil
	}

	const callers = 8
	results := make([]any, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			data, err := c.Query(context.Background(), key, fetch)
			assert.NoError(t, err)
			results[i] = data
		}(i)
	}

	// Let every caller reach the in-flight fetch before releasing it.
	require.Eventually(t, func() bool {
		return calls.Load() >= 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, data := range results {
		assert.Equal(t, "stats", data)
	}
}

func TestQueryStoresError(t *testing.T) {
	c := newTestCache(t)
	key := NewKey("Article", "page=1")

	boom := assert.AnError
	_, err := c.Query(context.Background(), key, func(ctx context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	snap, ok := c.Peek(key)
	require.True(t, ok)
	assert.Equal(t, StatusError, snap.Status)
	assert.ErrorIs(t, snap.Err, boom)

	// An errored entry refetches on the next query.
	var calls atomic.Int32
	data, err := c.Query(context.Background(), key, countingFetch(&calls, "recovered"))
	require.NoError(t, err)
	assert.Equal(t, "recovered", data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestMutateInvalidatesOnSuccessOnly(t *testing.T) {
	c := newTestCache(t)

	list := NewKey("Article", "limit=10&page=1")
	single := NewKey("Article", "id=42", Scoped("Article", "42"))
	other := NewKey("Analytics", "")

	var calls atomic.Int32
	for _, key := range []Key{list, single, other} {
		_, err := c.Query(context.Background(), key, countingFetch(&calls, "v1"))
		require.NoError(t, err)
	}

	// Failed mutation: nothing is touched.
	_, err := c.Mutate(context.Background(), func(ctx context.Context) (any, error) {
		return nil, assert.AnError
	}, Scoped("Article", "42"), Wide("Article"))
	require.Error(t, err)

	for _, key := range []Key{list, single, other} {
		snap, ok := c.Peek(key)
		require.True(t, ok)
		assert.False(t, snap.Stale, "failed mutation must not invalidate %s", key.ID())
	}

	// Successful update of article 42: the scoped entry and the wide article
	// entries go stale, analytics stays fresh.
	_, err = c.Mutate(context.Background(), func(ctx context.Context) (any, error) {
		return "updated", nil
	}, Scoped("Article", "42"), Wide("Article"))
	require.NoError(t, err)

	snap, _ := c.Peek(list)
	assert.True(t, snap.Stale)
	snap, _ = c.Peek(single)
	assert.True(t, snap.Stale)
	snap, _ = c.Peek(other)
	assert.False(t, snap.Stale)
}

func TestScopedInvalidationLeavesOtherRecordsAlone(t *testing.T) {
	c := newTestCache(t)

	art42 := NewKey("Article", "id=42", Scoped("Article", "42"))
	art43 := NewKey("Article", "id=43", Scoped("Article", "43"))

	var calls atomic.Int32
	for _, key := range []Key{art42, art43} {
		_, err := c.Query(context.Background(), key, countingFetch(&calls, "v1"))
		require.NoError(t, err)
	}

	c.Invalidate(Scoped("Article", "42"))

	snap, _ := c.Peek(art42)
	assert.True(t, snap.Stale)
	snap, _ = c.Peek(art43)
	assert.False(t, snap.Stale)
}

func TestStaleWhileRevalidate(t *testing.T) {
	c := newTestCache(t)
	key := NewKey("Article", "limit=10&page=1")

	var version atomic.Int32
	version.Store(1)
	fetch := func(ctx context.Context) (any, error) {
		return int(version.Load()), nil
	}

	data, err := c.Query(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, data)

	version.Store(2)
	c.Invalidate(Wide("Article"))

	snap, ok := c.Peek(key)
	require.True(t, ok)
	assert.True(t, snap.Stale)
	assert.Equal(t, 1, snap.Data, "stale entry keeps serving its last data")

	// The stale read serves old data immediately and revalidates behind it.
	data, err = c.Query(context.Background(), key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, data)

	require.Eventually(t, func() bool {
		snap, ok := c.Peek(key)
		return ok && !snap.Stale && snap.Data == 2
	}, time.Second, 5*time.Millisecond)
}

func TestInvalidateRevalidatesSubscribedEntries(t *testing.T) {
	c := newTestCache(t)
	key := NewKey("Article", "limit=10&page=1")
	c.Subscribe(key)

	var version atomic.Int32
	version.Store(1)
	fetch := func(ctx context.Context) (any, error) {
		return int(version.Load()), nil
	}

	_, err := c.Query(context.Background(), key, fetch)
	require.NoError(t, err)

	version.Store(2)
	c.Invalidate(Wide("Article"))

	require.Eventually(t, func() bool {
		snap, ok := c.Peek(key)
		return ok && !snap.Stale && snap.Data == 2
	}, time.Second, 5*time.Millisecond)
}

func TestViewSupersedesByIssueOrder(t *testing.T) {
	c := newTestCache(t)
	view := NewView()

	pageOne := NewKey("Article", "page=1")
	pageTwo := NewKey("Article", "page=2")

	started := make(chan struct{})
	release := make(chan struct{})
	slowFetch := func(ctx context.Context) (any, error) {
		close(started)
		<-release
		return "[art1]", nil
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		data, err := c.QueryView(context.Background(), view, pageOne, slowFetch)
		assert.NoError(t, err)
		assert.Equal(t, "[art1]", data)
	}()
	<-started

	// The page=2 request is issued later but resolves first.
	data, err := c.QueryView(context.Background(), view, pageTwo, func(ctx context.Context) (any, error) {
		return "[art2]", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "[art2]", data)

	close(release)
	wg.Wait()

	// The older request resolved last; the view must still show page=2.
	key, current, ok := view.Current()
	require.True(t, ok)
	assert.Equal(t, pageTwo.ID(), key.ID())
	assert.Equal(t, "[art2]", current)

	// Each key still caches its own result.
	snap, ok := c.Peek(pageOne)
	require.True(t, ok)
	assert.Equal(t, "[art1]", snap.Data)
}

func TestJanitorEvictsIdleUnsubscribedEntries(t *testing.T) {
	c := newTestCache(t,
		WithIdleTTL(30*time.Millisecond),
		WithJanitorSchedule("@every 50ms"),
	)

	idle := NewKey("Article", "page=1")
	held := NewKey("Article", "page=2")
	c.Subscribe(held)

	var calls atomic.Int32
	for _, key := range []Key{idle, held} {
		_, err := c.Query(context.Background(), key, countingFetch(&calls, "v"))
		require.NoError(t, err)
	}
	require.Equal(t, 2, c.Len())

	require.Eventually(t, func() bool {
		return c.Len() == 1
	}, 2*time.Second, 20*time.Millisecond)

	_, ok := c.Peek(idle)
	assert.False(t, ok)
	_, ok = c.Peek(held)
	assert.True(t, ok)
}

func TestUnsubscribeMakesEntryEvictable(t *testing.T) {
	c := newTestCache(t,
		WithIdleTTL(30*time.Millisecond),
		WithJanitorSchedule("@every 50ms"),
	)

	key := NewKey("Profile", "")
	c.Subscribe(key)

	var calls atomic.Int32
	_, err := c.Query(context.Background(), key, countingFetch(&calls, "me"))
	require.NoError(t, err)

	c.Unsubscribe(key)

	require.Eventually(t, func() bool {
		return c.Len() == 0
	}, 2*time.Second, 20*time.Millisecond)
}

func TestQueryAfterCloseFails(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NoError(t, c.Close())

	var calls atomic.Int32
	_, err = c.Query(context.Background(), NewKey("Article", ""), countingFetch(&calls, "x"))
	require.Error(t, err)
	assert.Zero(t, calls.Load())
}
