package tag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiSection struct {
	BaseURL string        `default:"http://localhost:5000/api"`
	Timeout time.Duration `default:"30s"`
	Retries int           `default:"1"`
}

type cacheSection struct {
	IdleTTL time.Duration `default:"5m"`
	Workers int           `default:"4"`
	Enabled bool          `default:"true"`
}

type testConfig struct {
	API     apiSection
	Cache   *cacheSection
	Verbose bool `default:"false"`
}

func TestApplyDefaults(t *testing.T) {
	cfg := &testConfig{}
	require.NoError(t, ApplyDefaults(cfg))

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, 1, cfg.API.Retries)

	require.NotNil(t, cfg.Cache)
	assert.Equal(t, 5*time.Minute, cfg.Cache.IdleTTL)
	assert.Equal(t, 4, cfg.Cache.Workers)
	assert.True(t, cfg.Cache.Enabled)
}

func TestApplyDefaultsKeepsExistingValues(t *testing.T) {
	cfg := &testConfig{}
	cfg.API.BaseURL = "https://dashboard.example.com/api"
	cfg.API.Retries = 3

	require.NoError(t, ApplyDefaults(cfg))

	assert.Equal(t, "https://dashboard.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.Retries)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}

func TestApplyDefaultsRejectsNonPointer(t *testing.T) {
	err := ApplyDefaults(testConfig{})
	assert.ErrorIs(t, err, ErrTargetMustBePointer)

	var nilCfg *testConfig
	err = ApplyDefaults(nilCfg)
	assert.ErrorIs(t, err, ErrTargetIsNil)

	s := "not a struct"
	err = ApplyDefaults(&s)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestApplyDefaultsBadTagValue(t *testing.T) {
	type broken struct {
		Count int `default:"not-a-number"`
	}

	err := ApplyDefaults(&broken{})
	require.Error(t, err)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Count", fe.Path)
}
