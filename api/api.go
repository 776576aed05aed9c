// Package api is the typed surface of the dashboard client core: auth,
// profile, article and analytics operations wired through the resource cache
// and the HTTP adapter, with session updates on the auth paths.
package api

import (
	"github.com/mdrianislam0or1/admin-dashboard/cache"
	"github.com/mdrianislam0or1/admin-dashboard/client"
	"github.com/mdrianislam0or1/admin-dashboard/log"
	"github.com/mdrianislam0or1/admin-dashboard/session"
)

// API exposes the dashboard operations.
type API struct {
	client  *client.Client
	cache   *cache.Cache
	session *session.Store
	logger  *log.Logger

	// articleList supersedes overlapping list requests by issue order when
	// the consumer flips filters or pages faster than responses arrive.
	articleList *cache.View
}

// Option configures an API.
type Option func(*API)

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(a *API) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New wires the typed surface over its collaborators.
func New(c *client.Client, cc *cache.Cache, s *session.Store, opts ...Option) *API {
	a := &API{
		client:      c,
		cache:       cc,
		session:     s,
		logger:      log.G,
		articleList: cache.NewView(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Session returns the session store.
func (a *API) Session() *session.Store {
	return a.session
}

// Cache returns the resource cache, e.g. for subscribing to keys.
func (a *API) Cache() *cache.Cache {
	return a.cache
}
