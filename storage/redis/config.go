package redis

import (
	"errors"

	"github.com/mdrianislam0or1/admin-dashboard/core/tag"
)

// Config holds connection settings for the redis session backend. Single
// node only; the session store keeps three small keys, clustering them
// buys nothing.
type Config struct {
	// Addr is the redis address, host:port.
	Addr string

	// Username for redis 6.0+ ACL auth.
	Username string

	// Password for auth, empty to disable.
	Password string

	// DB is the database index.
	DB int

	// Prefix namespaces all keys, so multiple dashboard profiles can share
	// one redis instance.
	Prefix string `default:"dashboard:session:"`

	// DialTimeout in milliseconds.
	DialTimeout int64 `default:"5000"`

	// ReadTimeout in milliseconds.
	ReadTimeout int64 `default:"3000"`

	// WriteTimeout in milliseconds.
	WriteTimeout int64 `default:"3000"`
}

// ErrEmptyAddr is returned when no redis address is configured.
var ErrEmptyAddr = errors.New("redis storage: empty addr")

// ApplyDefaults fills zero fields from the default tags.
func (c *Config) ApplyDefaults() error {
	return tag.ApplyDefaults(c)
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return ErrEmptyAddr
	}
	return nil
}
