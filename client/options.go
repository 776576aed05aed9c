package client

import (
	"net/http"
	"time"

	"github.com/mdrianislam0or1/admin-dashboard/log"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The cookie jar is
// preserved unless the replacement brings its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc == nil {
			return
		}
		if hc.Jar == nil {
			hc.Jar = c.hc.Jar
		}
		c.hc = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.hc.Timeout = timeout
		}
	}
}

// WithTokenProvider binds the source of the bearer token, normally the
// session store.
func WithTokenProvider(tokens TokenProvider) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithRetries sets how many times a safe request is replayed after a
// transport failure. Zero disables retries.
func WithRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.retries = retries
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics enables request metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}
