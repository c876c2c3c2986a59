package coursemap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/coursemap/internal/catalogs/persistence"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/errors"
)

// Mode selects how Start initializes the catalog.
type Mode string

const (
	// ModeSetup seeds the reference catalog, writes it to the data file and
	// returns without making the client Ready.
	ModeSetup Mode = "setup"
	// ModeRun restores the data file, or seeds when it does not exist, and
	// leaves the client Ready. Shutdown then persists the catalog.
	ModeRun Mode = "run"
	// ModeInspect loads the catalog the way ModeRun does but never writes
	// it back.
	ModeInspect Mode = "inspect"
)

// ParseMode converts a command-line mode argument. The empty string means run.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRun:
		return ModeRun, nil
	case ModeSetup:
		return ModeSetup, nil
	case ModeInspect:
		return ModeInspect, nil
	}
	return "", errors.NewValidationError("mode", s, "must be setup, run or inspect")
}

// State is the lifecycle state of a client.
type State int

const (
	// StateFresh is the initial state; no catalog is available.
	StateFresh State = iota
	// StateReady means the catalog is loaded and may be used.
	StateReady
	// StateClosed means Shutdown has run.
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Lifecycle controls startup and shutdown.
type Lifecycle interface {
	// Start initializes the catalog according to mode. It must be called in
	// the Fresh state.
	Start(ctx context.Context, mode Mode) error

	// Override installs cat as the live catalog and marks the client Ready
	// without touching disk. Shutdown will not persist an overridden catalog.
	Override(cat *catalogs.Catalog)

	// Shutdown persists the catalog if it was loaded in run mode, then
	// moves to Closed. Only the first call after Start does any work.
	Shutdown(ctx context.Context) error

	// State reports the current lifecycle state.
	State() State
}

// State reports the current lifecycle state.
func (c *client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Start initializes the catalog according to mode.
func (c *client) Start(ctx context.Context, mode Mode) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapResource("start", "catalog", "", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFresh {
		return errors.NewStateError("start in "+string(mode)+" mode", c.state.String())
	}

	switch mode {
	case ModeSetup:
		return c.setup()
	case ModeRun, ModeInspect:
		cat, err := c.restore()
		if err != nil {
			return err
		}
		c.install(cat)
		c.persistOnShutdown = mode == ModeRun
		return nil
	}
	return errors.NewValidationError("mode", string(mode), "must be setup, run or inspect")
}

// setup must be called with c.mu held.
func (c *client) setup() error {
	cat, err := c.seeded()
	if err != nil {
		return err
	}
	if err := cat.Save(); err != nil {
		return err
	}
	c.logger.Info().
		Str("file", c.options.dataFile).
		Int("departments", cat.Len()).
		Msg("Reference catalog written")
	return nil
}

// restore reads the data file, or seeds when it does not exist.
func (c *client) restore() (*catalogs.Catalog, error) {
	exists, err := persistence.Exists(c.options.dataFile)
	if err != nil {
		return nil, errors.WrapResource("restore", "catalog", "", err)
	}

	var cat *catalogs.Catalog
	if exists {
		cat = c.newCatalog()
		if err := cat.Load(); err != nil {
			c.logger.Error().Err(err).
				Str("file", c.options.dataFile).
				Msg("Catalog file is unreadable; run setup to regenerate it")
			return nil, err
		}
		c.logger.Info().
			Str("file", c.options.dataFile).
			Int("departments", cat.Len()).
			Msg("Catalog restored")
	} else {
		if cat, err = c.seeded(); err != nil {
			return nil, err
		}
		c.logger.Info().
			Str("file", c.options.dataFile).
			Int("departments", cat.Len()).
			Msg("No catalog file found, seeded reference catalog")
	}
	return cat, nil
}

func (c *client) seeded() (*catalogs.Catalog, error) {
	departments, err := c.options.seed()
	if err != nil {
		return nil, errors.WrapResource("seed", "catalog", "", err)
	}
	cat := c.newCatalog()
	cat.ReplaceAll(departments)
	return cat, nil
}

// install must be called with c.mu held.
func (c *client) install(cat *catalogs.Catalog) {
	if c.catalog != nil && c.catalog != cat {
		c.catalog.SetObserver(nil)
	}
	cat.SetObserver(c.hooks.trigger)
	c.catalog = cat
	c.state = StateReady
}

// Override installs cat as the live catalog without touching disk. Change
// hooks receive a CatalogReplaced change once the swap is visible.
func (c *client) Override(cat *catalogs.Catalog) {
	if cat == nil {
		return
	}
	c.mu.Lock()
	c.install(cat)
	c.persistOnShutdown = false
	c.mu.Unlock()

	c.logger.Debug().Int("departments", cat.Len()).Msg("Catalog overridden")
	c.hooks.trigger(catalogs.Change{
		Type:      catalogs.CatalogReplaced,
		Revision:  cat.Revision(),
		Timestamp: time.Now(),
	})
}

// Shutdown persists the catalog once and closes the client.
func (c *client) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return nil
	}
	c.state = StateClosed
	cat := c.catalog
	persist := c.persistOnShutdown
	c.mu.Unlock()

	if !persist {
		c.logger.Debug().Msg("Shutdown without persisting")
		return nil
	}

	// The save runs even if ctx is already done; losing the catalog is worse
	// than a late exit.
	if ctx.Err() != nil {
		c.logger.Warn().Msg("Shutdown context already done, saving anyway")
	}
	if err := cat.Save(); err != nil {
		c.logger.Error().Err(err).Str("file", c.options.dataFile).Msg("Failed to save catalog on shutdown")
		return err
	}
	c.logger.Info().
		Str("file", c.options.dataFile).
		Uint64("revision", cat.Revision()).
		Msg("Catalog saved")
	return nil
}
