package config

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mdrianislam0or1/admin-dashboard/log"
)

// Config manages loading, validating and watching a configuration target.
type Config struct {
	mu       sync.RWMutex
	viper    *viper.Viper
	validate *validator.Validate
	target   any
	loader   Loader
	watch    bool
}

// New creates a Config for the given target struct. If no loader is
// provided, a FileLoader for "config.yaml" in the working directory is used.
func New(target any, opts ...Option) *Config {
	c := &Config{
		viper:    viper.New(),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		target:   target,
		watch:    true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.loader == nil {
		c.loader = NewFileLoader("config.yaml", []string{"."}, c.viper, c.validate)
	}

	return c
}

// Load reads the configuration using the configured loader.
func (c *Config) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// Reload reloads the configuration from the loader.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loader.Load(c.target)
}

// Watch starts watching for configuration changes and reloads on change.
func (c *Config) Watch() error {
	if !c.watch {
		return nil
	}

	return c.loader.Watch(func() {
		log.Info().Msg("config change detected")

		if err := c.Reload(); err != nil {
			log.Error().Err(err).Msg("failed to reload config after change")
			return
		}

		log.Info().Msg("config reloaded successfully")
	})
}

// GetViper returns the underlying viper instance.
func (c *Config) GetViper() *viper.Viper {
	return c.viper
}
