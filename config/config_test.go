package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	Retries int           `mapstructure:"retries" default:"1"`
}

type clientConfig struct {
	API     apiConfig `mapstructure:"api"`
	Profile string    `mapstructure:"profile" default:"default"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
	return dir
}

func newLoaded(t *testing.T, dir string) *clientConfig {
	t.Helper()

	cfg := new(clientConfig)
	v := viper.New()
	c := New(cfg,
		WithViper(v),
		WithLoader(NewFileLoader("config.yaml", []string{dir}, v, nil)),
		WithWatch(false),
	)
	require.NoError(t, c.Load())
	return cfg
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := writeConfig(t, "api:\n  base_url: http://localhost:5000/api\n")
	cfg := newLoaded(t, dir)

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Retries)
	assert.Equal(t, "default", cfg.Profile)
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := writeConfig(t, "api:\n  base_url: https://dash.example.com/api\n  timeout: 10s\n  retries: 3\nprofile: staging\n")
	cfg := newLoaded(t, dir)

	assert.Equal(t, "https://dash.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 3, cfg.API.Retries)
	assert.Equal(t, "staging", cfg.Profile)
}

func TestValidationRejectsBadBaseURL(t *testing.T) {
	dir := writeConfig(t, "api:\n  base_url: not-a-url\n")

	cfg := new(clientConfig)
	v := viper.New()
	c := New(cfg,
		WithViper(v),
		WithWatch(false),
		WithLoader(NewFileLoader("config.yaml", []string{dir}, v, validator.New(validator.WithRequiredStructEnabled()))),
	)

	err := c.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestMissingFile(t *testing.T) {
	cfg := new(clientConfig)
	v := viper.New()
	c := New(cfg,
		WithViper(v),
		WithWatch(false),
		WithLoader(NewFileLoader("config.yaml", []string{t.TempDir()}, v, nil)),
	)

	err := c.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
