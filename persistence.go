package coursemap

import (
	"github.com/agentstation/coursemap/pkg/errors"
)

// Persistence handles on-demand catalog persistence.
type Persistence interface {
	// Save writes the live catalog to the data file. It does not affect
	// whether Shutdown saves.
	Save() error

	// DataFile returns the configured catalog file.
	DataFile() string
}

// Save writes the live catalog to the data file.
func (c *client) Save() error {
	c.mu.RLock()
	cat, state := c.catalog, c.state
	c.mu.RUnlock()

	if state != StateReady {
		return errors.NewStateError("save catalog", state.String())
	}
	return cat.SaveTo(c.options.dataFile)
}

// DataFile returns the configured catalog file.
func (c *client) DataFile() string {
	return c.options.dataFile
}
