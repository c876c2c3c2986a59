package coursemap

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap/internal/catalogs/embedded"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/constants"
	"github.com/agentstation/coursemap/pkg/errors"
	"github.com/agentstation/coursemap/pkg/logging"
)

// SeedFunc produces the departments used when no data file exists and by
// setup mode.
type SeedFunc func() (map[string]*catalogs.Department, error)

// options holds the configured settings for a client.
type options struct {
	dataFile string
	width    catalogs.Width
	seed     SeedFunc
	logger   *zerolog.Logger
}

// Option is a function that configures a Client.
type Option func(*options) error

func defaults() *options {
	return &options{
		dataFile: constants.DefaultDataFile,
		width:    catalogs.Width64,
		seed:     embedded.Load,
		logger:   logging.Default(),
	}
}

func (o *options) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return err
		}
	}
	return nil
}

// WithDataFile sets the catalog file read at startup and written at shutdown.
func WithDataFile(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewValidationError("data_file", path, "cannot be empty")
		}
		o.dataFile = path
		return nil
	}
}

// WithWidth sets the length-prefix width of the data file.
func WithWidth(w catalogs.Width) Option {
	return func(o *options) error {
		if !w.Valid() {
			return errors.NewValidationError("length_width", int(w), "must be 4 or 8")
		}
		o.width = w
		return nil
	}
}

// WithSeed replaces the embedded reference catalog as the seed source.
func WithSeed(fn SeedFunc) Option {
	return func(o *options) error {
		if fn == nil {
			return errors.NewValidationError("seed", nil, "cannot be nil")
		}
		o.seed = fn
		return nil
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		if logger != nil {
			o.logger = logger
		}
		return nil
	}
}
