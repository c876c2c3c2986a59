package coursemap

import (
	"sync"

	"github.com/agentstation/coursemap/pkg/catalogs"
)

// ChangeHook is called after every committed catalog change.
type ChangeHook func(change catalogs.Change)

// Hooks provides event callback registration.
type Hooks interface {
	// OnChange registers a callback for catalog changes. Callbacks run
	// synchronously on the goroutine that made the change and must not block.
	OnChange(fn ChangeHook)
}

// hooks manages event callbacks for catalog changes
type hooks struct {
	mu       sync.RWMutex
	onChange []ChangeHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnChange registers a callback for catalog changes
func (h *hooks) OnChange(fn ChangeHook) {
	if fn == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// trigger is installed as the catalog observer.
func (h *hooks) trigger(change catalogs.Change) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onChange {
		fn(change)
	}
}

// OnChange registers a callback for catalog changes.
func (c *client) OnChange(fn ChangeHook) {
	c.hooks.OnChange(fn)
}
