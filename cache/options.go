package cache

import (
	"time"

	"github.com/mdrianislam0or1/admin-dashboard/log"
)

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables cache metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithIdleTTL sets how long an unsubscribed entry may sit idle before the
// janitor evicts it.
func WithIdleTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.idleTTL = ttl
		}
	}
}

// WithJanitorSchedule sets the cron spec of the eviction sweep, e.g.
// "@every 30s".
func WithJanitorSchedule(spec string) Option {
	return func(c *Cache) {
		if spec != "" {
			c.janitorSpec = spec
		}
	}
}

// WithWorkers sets the size of the background revalidation pool.
func WithWorkers(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.workers = n
		}
	}
}
