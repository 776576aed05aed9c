// Package cache is the query/mutation layer between the typed API surface
// and the HTTP adapter. Reads are cached per key and deduplicated while in
// flight; successful writes invalidate the entries whose tags they declare.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/mdrianislam0or1/admin-dashboard/errors"
	"github.com/mdrianislam0or1/admin-dashboard/log"
)

// Fetch loads the data for one key, normally a closure over a client call.
type Fetch func(ctx context.Context) (any, error)

// Cache holds entries keyed by resource+canonical query, with a tag index
// for invalidation, a worker pool for background revalidation and a cron
// janitor that evicts idle unsubscribed entries.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	byTag   map[Tag]map[string]struct{}
	fetches map[string]Fetch
	closed  bool

	group   singleflight.Group
	pool    *ants.Pool
	cron    *cron.Cron
	logger  *log.Logger
	metrics *Metrics

	idleTTL     time.Duration
	janitorSpec string
	workers     int
}

// New creates a cache, starts its revalidation pool and janitor.
func New(opts ...Option) (*Cache, error) {
	c := &Cache{
		entries:     make(map[string]*entry),
		byTag:       make(map[Tag]map[string]struct{}),
		fetches:     make(map[string]Fetch),
		logger:      log.G,
		idleTTL:     5 * time.Minute,
		janitorSpec: "@every 1m",
		workers:     4,
	}

	for _, opt := range opts {
		opt(c)
	}

	pool, err := ants.NewPool(c.workers, ants.WithNonblocking(false))
	if err != nil {
		return nil, errors.Internal("create revalidation pool: %v", err)
	}
	c.pool = pool

	c.cron = cron.New()
	if _, err := c.cron.AddFunc(c.janitorSpec, c.sweep); err != nil {
		pool.Release()
		return nil, errors.Internal("schedule janitor %q: %v", c.janitorSpec, err)
	}
	c.cron.Start()

	return c, nil
}

// Query returns the cached data for key, fetching it when the entry is
// uninitialized, errored, or absent. Concurrent callers for the same key
// share one network call. A stale entry serves its last data immediately and
// revalidates in the background.
func (c *Cache) Query(ctx context.Context, key Key, fetch Fetch) (any, error) {
	id := key.ID()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, errors.ServiceUnavailable("cache is closed")
	}
	e := c.ensureEntry(key)
	c.fetches[id] = fetch
	e.lastAccess = time.Now()

	if e.status == StatusSuccess {
		data, stale := e.data, e.stale
		c.mu.Unlock()
		if c.metrics != nil {
			c.metrics.hits.Inc()
		}
		if stale {
			c.scheduleRevalidate(key)
		}
		return data, nil
	}
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.misses.Inc()
	}
	return c.fetchKey(ctx, key, fetch)
}

// QueryView is Query with a supersede guard for a list view whose key
// changes between requests: the view only takes a result if no newer request
// was issued through it, regardless of arrival order.
func (c *Cache) QueryView(ctx context.Context, view *View, key Key, fetch Fetch) (any, error) {
	ticket := view.next()
	data, err := c.Query(ctx, key, fetch)
	if err != nil {
		return nil, err
	}
	view.apply(ticket, key, data)
	return data, nil
}

// Mutate runs a write and, only on success, invalidates the declared tags. A
// failed mutation touches nothing; the error goes back to the caller for
// local handling.
func (c *Cache) Mutate(ctx context.Context, do func(ctx context.Context) (any, error), tags ...Tag) (any, error) {
	result, err := do(ctx)
	if err != nil {
		return nil, err
	}
	c.Invalidate(tags...)
	return result, nil
}

// Invalidate marks every entry carrying one of the tags as stale and
// schedules background revalidation for entries with active subscribers. A
// wide tag reaches every entry of its resource; a scoped tag reaches only
// the entries registered under it.
func (c *Cache) Invalidate(tags ...Tag) {
	c.mu.Lock()
	var revalidate []Key
	for _, t := range tags {
		for id := range c.byTag[t] {
			e, ok := c.entries[id]
			if !ok || e.stale {
				continue
			}
			e.stale = true
			if c.metrics != nil {
				c.metrics.invalidations.Inc()
			}
			if e.subscribers > 0 {
				revalidate = append(revalidate, e.key)
			}
		}
	}
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}
	for _, key := range revalidate {
		c.scheduleRevalidate(key)
	}
}

// Subscribe registers an active consumer of key, protecting its entry from
// janitor eviction.
func (c *Cache) Subscribe(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.ensureEntry(key)
	e.subscribers++
	e.lastAccess = time.Now()
}

// Unsubscribe drops one consumer registration for key.
func (c *Cache) Unsubscribe(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.ID()]; ok && e.subscribers > 0 {
		e.subscribers--
	}
}

// Peek returns the current observable state of key without fetching.
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.ID()]
	if !ok {
		return Snapshot{}, false
	}
	return e.snapshot(), true
}

// Len returns the number of resident entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the janitor and the revalidation pool. Further queries fail.
func (c *Cache) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	<-c.cron.Stop().Done()
	c.pool.Release()
	return nil
}

func (c *Cache) fetchKey(ctx context.Context, key Key, fetch Fetch) (any, error) {
	id := key.ID()
	v, err, shared := c.group.Do(id, func() (any, error) {
		seq := c.beginFlight(id)
		data, ferr := fetch(ctx)
		c.completeFlight(id, seq, data, ferr)
		return data, ferr
	})
	if shared && c.metrics != nil {
		c.metrics.dedups.Inc()
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// beginFlight assigns the next issue sequence for the key's entry. An entry
// with prior data keeps serving it while the refetch is in flight; anything
// else shows loading.
func (c *Cache) beginFlight(id string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return 0
	}
	e.issued++
	if e.status != StatusSuccess {
		e.status = StatusLoading
	}
	if c.metrics != nil {
		c.metrics.inflight.Inc()
	}
	return e.issued
}

// completeFlight applies a fetch result unless a newer fetch was issued for
// the same key in the meantime; late results of superseded fetches are
// discarded so entries always reflect issue order.
func (c *Cache) completeFlight(id string, seq uint64, data any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq == 0 {
		return
	}
	if c.metrics != nil {
		c.metrics.inflight.Dec()
	}

	e, ok := c.entries[id]
	if !ok {
		return
	}
	if seq < e.issued {
		return
	}

	e.applied = seq
	e.updatedAt = time.Now()
	e.stale = false
	if err != nil {
		e.status = StatusError
		e.err = err
		e.data = nil
		return
	}
	e.status = StatusSuccess
	e.data = data
	e.err = nil
}

func (c *Cache) scheduleRevalidate(key Key) {
	id := key.ID()
	err := c.pool.Submit(func() {
		c.mu.Lock()
		fetch, ok := c.fetches[id]
		c.mu.Unlock()
		if !ok {
			return
		}
		if _, ferr := c.fetchKey(context.Background(), key, fetch); ferr != nil {
			c.logger.Warn().
				Str("key", id).
				Err(ferr).
				Msg("background revalidation failed")
		}
	})
	if err != nil {
		c.logger.Warn().Str("key", id).Err(err).Msg("revalidation pool rejected task")
	}
}

// sweep evicts entries no consumer subscribes to once they sit idle past the
// TTL. In-flight entries are skipped.
func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, e := range c.entries {
		if e.subscribers > 0 || e.status == StatusLoading {
			continue
		}
		if now.Sub(e.lastAccess) <= c.idleTTL {
			continue
		}
		c.removeEntry(id, e)
		if c.metrics != nil {
			c.metrics.evictions.Inc()
		}
	}
}

func (c *Cache) ensureEntry(key Key) *entry {
	id := key.ID()
	if e, ok := c.entries[id]; ok {
		return e
	}
	e := &entry{key: key, status: StatusUninitialized, lastAccess: time.Now()}
	c.entries[id] = e
	for _, t := range key.Tags {
		set := c.byTag[t]
		if set == nil {
			set = make(map[string]struct{})
			c.byTag[t] = set
		}
		set[id] = struct{}{}
	}
	return e
}

func (c *Cache) removeEntry(id string, e *entry) {
	delete(c.entries, id)
	delete(c.fetches, id)
	for _, t := range e.key.Tags {
		if set, ok := c.byTag[t]; ok {
			delete(set, id)
			if len(set) == 0 {
				delete(c.byTag, t)
			}
		}
	}
}
