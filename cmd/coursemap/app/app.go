// Package app provides the application context and dependency management
// for the coursemap CLI. It centralizes configuration, logging and the
// lifecycle of the catalog service shared by every command.
package app

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
)

// App represents the coursemap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger
	out    io.Writer

	// Catalog service (lazy-initialized, singleton)
	mu        sync.RWMutex
	coursemap coursemap.Client
}

// New creates a new App instance with the given version information.
// Configuration is loaded from the default sources; options may replace it.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format. Empty means detect.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Coursemap returns the catalog service, creating it on first use. The
// service is not started; each command picks its own mode.
func (a *App) Coursemap() (coursemap.Client, error) {
	a.mu.RLock()
	if a.coursemap != nil {
		cm := a.coursemap
		a.mu.RUnlock()
		return cm, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.coursemap != nil {
		return a.coursemap, nil
	}

	opts, err := a.coursemapOptions()
	if err != nil {
		return nil, err
	}
	cm, err := coursemap.New(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "coursemap", "", err)
	}

	a.coursemap = cm
	return cm, nil
}

// Catalog returns the live catalog of the service.
func (a *App) Catalog() (*catalogs.Catalog, error) {
	cm, err := a.Coursemap()
	if err != nil {
		return nil, err
	}
	return cm.Catalog()
}

// Shutdown shuts the catalog service down, persisting it if it was started
// in run mode. It is safe to call more than once.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.RLock()
	cm := a.coursemap
	a.mu.RUnlock()

	if cm == nil {
		return nil
	}
	return cm.Shutdown(ctx)
}

func (a *App) coursemapOptions() ([]coursemap.Option, error) {
	width, err := a.config.Width()
	if err != nil {
		return nil, err
	}
	return []coursemap.Option{
		coursemap.WithDataFile(a.config.DataFile),
		coursemap.WithWidth(width),
		coursemap.WithLogger(a.logger),
	}, nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		if config == nil {
			return errors.NewValidationError("config", nil, "must not be nil")
		}
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithCoursemap sets a custom catalog service (useful for testing).
func WithCoursemap(cm coursemap.Client) Option {
	return func(a *App) error {
		a.coursemap = cm
		return nil
	}
}

// WithOutput redirects command output, which defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) error {
		a.out = w
		return nil
	}
}
