package config

import (
	"path"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/mdrianislam0or1/admin-dashboard/core/tag"
	"github.com/mdrianislam0or1/admin-dashboard/errors"
)

// FileLoader loads configuration from a file, with environment-variable
// overrides (dots in keys map to underscores).
type FileLoader struct {
	viper    *viper.Viper
	validate *validator.Validate
	name     string
	paths    []string
}

// NewFileLoader creates a file loader for the named config file searched in
// the given paths.
func NewFileLoader(name string, paths []string, v *viper.Viper, validate *validator.Validate) *FileLoader {
	extension := path.Ext(name)
	configType := strings.TrimPrefix(extension, ".")

	for _, configPath := range paths {
		v.AddConfigPath(configPath)
	}

	v.SetConfigName(name)
	v.SetConfigType(configType)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &FileLoader{
		viper:    v,
		paths:    paths,
		name:     name,
		validate: validate,
	}
}

// Load implements Loader. Defaults from struct tags are applied before
// unmarshalling so fields missing from the file still get their defaults.
func (l *FileLoader) Load(target any) error {
	if err := tag.ApplyDefaults(target); err != nil {
		return errors.Internal("failed to apply defaults: %v", err)
	}

	if err := l.viper.ReadInConfig(); err != nil {
		return errors.NotFound("config file not found: %v", err)
	}

	if err := l.viper.Unmarshal(target); err != nil {
		return errors.Internal("config parse error: %v", err)
	}

	if l.validate != nil {
		if err := l.validate.Struct(target); err != nil {
			return errors.BadRequest("config validation failed: %v", err)
		}
	}

	return nil
}

// Watch implements Loader.
func (l *FileLoader) Watch(callback func()) error {
	l.viper.OnConfigChange(func(e fsnotify.Event) {
		if callback != nil {
			callback()
		}
	})

	l.viper.WatchConfig()
	return nil
}
