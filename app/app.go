// Package app assembles the client core with an explicit construction and
// teardown lifecycle: config, logging, durable storage, session, HTTP
// adapter, resource cache and the typed API are wired as injectable services
// instead of ambient globals.
package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/mdrianislam0or1/admin-dashboard/api"
	"github.com/mdrianislam0or1/admin-dashboard/cache"
	"github.com/mdrianislam0or1/admin-dashboard/client"
	"github.com/mdrianislam0or1/admin-dashboard/config"
	"github.com/mdrianislam0or1/admin-dashboard/log"
	"github.com/mdrianislam0or1/admin-dashboard/session"
	"github.com/mdrianislam0or1/admin-dashboard/storage"
	filestore "github.com/mdrianislam0or1/admin-dashboard/storage/file"
	"github.com/mdrianislam0or1/admin-dashboard/storage/memory"
	redisstore "github.com/mdrianislam0or1/admin-dashboard/storage/redis"
)

// ErrClosePanic is reported when a close function panics during teardown.
var ErrClosePanic = errors.New("close function panicked")

// App holds the wired client core services.
type App struct {
	cfg     *Config
	logger  *log.Logger
	storage storage.Storage
	session *session.Store
	client  *client.Client
	cache   *cache.Cache
	api     *api.API

	mu         sync.Mutex
	closeFuncs []closeFunc
	closed     bool

	closeTimeout time.Duration
}

// closeFunc is one named teardown step with its own timeout.
type closeFunc struct {
	name    string
	fn      func(context.Context) error
	timeout time.Duration
}

// Option configures the app before wiring.
type Option func(*options)

type options struct {
	cfg        *Config
	configFile string
	storage    storage.Storage
	logger     *log.Logger
	registry   prometheus.Registerer
}

// WithConfig supplies the configuration directly, skipping file loading.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithConfigFile sets the config file name loaded from the working
// directory, default "config.yaml".
func WithConfigFile(name string) Option {
	return func(o *options) {
		if name != "" {
			o.configFile = name
		}
	}
}

// WithStorage overrides the configured storage backend, e.g. with a memory
// store in tests.
func WithStorage(st storage.Storage) Option {
	return func(o *options) {
		o.storage = st
	}
}

// WithLogger overrides the configured logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetricsRegistry sets the prometheus registry used when metrics are
// enabled, default prometheus.DefaultRegisterer.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// New wires the full client core: configuration, logger, storage backend,
// session (rehydrated from storage), HTTP adapter, resource cache and the
// typed API surface. Services created along the way are torn down again if a
// later step fails.
func New(ctx context.Context, opts ...Option) (*App, error) {
	o := &options{configFile: "config.yaml"}
	for _, opt := range opts {
		opt(o)
	}

	cfg := o.cfg
	if cfg == nil {
		cfg = &Config{}
		v := viper.New()
		validate := validator.New(validator.WithRequiredStructEnabled())
		c := config.New(cfg,
			config.WithViper(v),
			config.WithValidator(validate),
			config.WithWatch(false),
			config.WithLoader(config.NewFileLoader(o.configFile, []string{"."}, v, validate)),
		)
		if err := c.Load(); err != nil {
			return nil, err
		}
	} else if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	a := &App{
		cfg:          cfg,
		closeTimeout: 10 * time.Second,
	}

	logger, err := a.buildLogger(o)
	if err != nil {
		return nil, err
	}
	a.logger = logger
	log.SetGlobalLogger(logger)

	st, err := a.buildStorage(ctx, o)
	if err != nil {
		a.rollback()
		return nil, err
	}
	a.storage = st
	a.registerClose("storage", func(context.Context) error { return st.Close() }, 5*time.Second)

	a.session = session.NewStore(st, session.WithLogger(logger))
	a.session.LoadInitial(ctx)

	clientOpts := []client.Option{
		client.WithTokenProvider(a.session),
		client.WithTimeout(time.Duration(cfg.API.TimeoutSeconds) * time.Second),
		client.WithRetries(cfg.API.Retries),
		client.WithLogger(logger),
	}
	cacheOpts := []cache.Option{
		cache.WithLogger(logger),
		cache.WithIdleTTL(time.Duration(cfg.Cache.IdleTTLSeconds) * time.Second),
		cache.WithJanitorSchedule(cfg.Cache.JanitorSchedule),
		cache.WithWorkers(cfg.Cache.Workers),
	}
	if cfg.Metrics {
		reg := o.registry
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		clientOpts = append(clientOpts, client.WithMetrics(client.NewMetrics(reg)))
		cacheOpts = append(cacheOpts, cache.WithMetrics(cache.NewMetrics(reg)))
	}

	a.client, err = client.New(cfg.API.BaseURL, clientOpts...)
	if err != nil {
		a.rollback()
		return nil, err
	}

	a.cache, err = cache.New(cacheOpts...)
	if err != nil {
		a.rollback()
		return nil, err
	}
	a.registerClose("cache", func(context.Context) error { return a.cache.Close() }, 10*time.Second)

	a.api = api.New(a.client, a.cache, a.session, api.WithLogger(logger))

	a.registerClose("logger", func(context.Context) error { return logger.Close() }, time.Second)

	logger.Info().
		Str("base_url", cfg.API.BaseURL).
		Str("storage", cfg.Storage.Backend).
		Bool("authenticated", a.session.IsAuthenticated()).
		Msg("client core ready")

	return a, nil
}

func (a *App) buildLogger(o *options) (*log.Logger, error) {
	if o.logger != nil {
		return o.logger, nil
	}

	level, err := zerolog.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	if a.cfg.Log.File {
		return log.NewFile(a.cfg.Log.FileConfig, log.WithLevel(level))
	}
	return log.New(log.WithLevel(level)), nil
}

func (a *App) buildStorage(ctx context.Context, o *options) (storage.Storage, error) {
	if o.storage != nil {
		return o.storage, nil
	}

	switch a.cfg.Storage.Backend {
	case "memory":
		return memory.New(), nil
	case "redis":
		return redisstore.New(ctx, &a.cfg.Storage.Redis)
	default:
		return filestore.New(a.cfg.Storage.FilePath)
	}
}

// API returns the typed dashboard surface.
func (a *App) API() *api.API { return a.api }

// Session returns the session store.
func (a *App) Session() *session.Store { return a.session }

// Client returns the HTTP adapter.
func (a *App) Client() *client.Client { return a.client }

// Cache returns the resource cache.
func (a *App) Cache() *cache.Cache { return a.cache }

// Logger returns the app logger.
func (a *App) Logger() *log.Logger { return a.logger }

func (a *App) registerClose(name string, fn func(context.Context) error, timeout time.Duration) {
	if timeout == 0 {
		timeout = a.closeTimeout
	}
	a.mu.Lock()
	a.closeFuncs = append(a.closeFuncs, closeFunc{name: name, fn: fn, timeout: timeout})
	a.mu.Unlock()
}

// rollback tears down what New built before a wiring step failed.
func (a *App) rollback() {
	_ = a.Close(context.Background())
}

// Close runs every registered close function concurrently, each with its own
// timeout. Idempotent; the first call wins.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	closeFuncs := make([]closeFunc, len(a.closeFuncs))
	copy(closeFuncs, a.closeFuncs)
	a.mu.Unlock()

	eg, ctx := errgroup.WithContext(ctx)
	for _, cf := range closeFuncs {
		eg.Go(func() error {
			return a.runClose(ctx, cf)
		})
	}
	return eg.Wait()
}

// runClose executes one close function, bounding it with its timeout and
// containing panics so one broken teardown step cannot take out the rest.
func (a *App) runClose(ctx context.Context, cf closeFunc) error {
	ctx, cancel := context.WithTimeout(ctx, cf.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error().Interface("panic", r).Str("close", cf.name).Msg("close function panicked")
				done <- ErrClosePanic
			}
		}()
		done <- cf.fn(ctx)
	}()

	select {
	case err := <-done:
		if err != nil {
			a.logger.Error().Err(err).Str("close", cf.name).Msg("close function failed")
		}
		return err
	case <-ctx.Done():
		a.logger.Warn().Str("close", cf.name).Msg("close function timed out")
		return ctx.Err()
	}
}
