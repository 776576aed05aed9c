package app

import (
	"github.com/mdrianislam0or1/admin-dashboard/core/tag"
	"github.com/mdrianislam0or1/admin-dashboard/log"
	redisstore "github.com/mdrianislam0or1/admin-dashboard/storage/redis"
)

// Config is the full client-core configuration, loaded from config.yaml with
// environment-variable overrides.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`

	// Metrics registers prometheus collectors for the HTTP adapter and the
	// resource cache.
	Metrics bool `mapstructure:"metrics"`
}

// APIConfig configures the HTTP adapter.
type APIConfig struct {
	// BaseURL is the dashboard API origin, including any path prefix.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// TimeoutSeconds bounds each request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`

	// Retries replays safe requests after transport failures.
	Retries int `mapstructure:"retries" default:"1"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Level      string         `mapstructure:"level" default:"info"`
	File       bool           `mapstructure:"file"`
	FileConfig log.FileConfig `mapstructure:"file_config"`
}

// StorageConfig selects and configures the durable session backend.
type StorageConfig struct {
	// Backend is one of file, memory, redis.
	Backend string `mapstructure:"backend" default:"file" validate:"oneof=file memory redis"`

	// FilePath is the session file location for the file backend.
	FilePath string `mapstructure:"file_path" default:"session.json"`

	Redis redisstore.Config `mapstructure:"redis"`
}

// CacheConfig configures the resource cache.
type CacheConfig struct {
	IdleTTLSeconds  int    `mapstructure:"idle_ttl_seconds" default:"300"`
	JanitorSchedule string `mapstructure:"janitor_schedule" default:"@every 1m"`
	Workers         int    `mapstructure:"workers" default:"4"`
}

func (c *Config) applyDefaults() error {
	return tag.ApplyDefaults(c)
}
