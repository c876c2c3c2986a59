// Package coursemap owns the academic catalog for the lifetime of a process.
//
// A Client seeds or restores the catalog at startup, hands the live catalog
// to the API layer, fans change notifications out to registered hooks and
// writes the catalog back to disk exactly once at shutdown.
//
// Example usage:
//
//	cm, err := coursemap.New(coursemap.WithDataFile("./coursemap.bin"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Restore from disk, or seed the reference catalog on first run
//	if err := cm.Start(ctx, coursemap.ModeRun); err != nil {
//	    log.Fatal(err)
//	}
//	defer cm.Shutdown(context.Background())
//
//	cm.OnChange(func(c catalogs.Change) {
//	    log.Printf("%s %s %s", c.Type, c.Department, c.Course)
//	})
//
//	cat, _ := cm.Catalog()
//	fmt.Print(cat)
package coursemap

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Catalog provides access to the live catalog.
type Catalog interface {
	// Catalog returns the live catalog. It fails unless the client is Ready.
	Catalog() (*catalogs.Catalog, error)
}

// Client manages the catalog lifecycle and change hooks.
type Client interface {
	Catalog
	Lifecycle
	Persistence
	Hooks
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options
	logger  *zerolog.Logger
	hooks   *hooks

	mu      sync.RWMutex
	state   State
	catalog *catalogs.Catalog

	// persistOnShutdown is set by Start in run mode and cleared by Override.
	persistOnShutdown bool
}

// New creates a Client in the Fresh state. No I/O happens until Start.
func New(opts ...Option) (Client, error) {
	o := defaults()
	if err := o.apply(opts...); err != nil {
		return nil, err
	}

	logger := o.logger.With().Str("component", "coursemap").Logger()
	return &client{
		options: o,
		logger:  &logger,
		hooks:   newHooks(),
		state:   StateFresh,
	}, nil
}

// Catalog returns the live catalog.
func (c *client) Catalog() (*catalogs.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != StateReady {
		return nil, errors.NewStateError("access catalog", c.state.String())
	}
	return c.catalog, nil
}

// newCatalog returns an empty catalog bound to the configured file.
func (c *client) newCatalog() *catalogs.Catalog {
	return catalogs.New(
		catalogs.WithPath(c.options.dataFile),
		catalogs.WithWidth(c.options.width),
	)
}
