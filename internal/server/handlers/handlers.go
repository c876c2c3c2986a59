// Package handlers provides HTTP request handlers for the coursemap API.
//
// Catalog routes read their arguments from the query string. Every required
// parameter is checked for presence, in order, before any lookup is made.
package handlers

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap/cmd/application"
	"github.com/agentstation/coursemap/internal/server/cache"
	"github.com/agentstation/coursemap/internal/server/response"
	ws "github.com/agentstation/coursemap/internal/server/websocket"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/logging"
)

// Query parameter names.
const (
	ParamDept       = "deptCode"
	ParamCourse     = "courseCode"
	ParamCount      = "count"
	ParamLocation   = "location"
	ParamInstructor = "instructor"
	ParamTime       = "time"
)

// Handlers provides access to all HTTP handlers.
type Handlers struct {
	app      application.Application
	cache    *cache.Cache
	wsHub    *ws.Hub
	upgrader websocket.Upgrader
	logger   *zerolog.Logger
}

// New creates a new Handlers instance.
func New(
	app application.Application,
	cache *cache.Cache,
	wsHub *ws.Hub,
	upgrader websocket.Upgrader,
	logger *zerolog.Logger,
) *Handlers {
	return &Handlers{
		app:      app,
		cache:    cache,
		wsHub:    wsHub,
		upgrader: upgrader,
		logger:   logger,
	}
}

// catalog returns the live catalog, or writes 503 and returns false.
func (h *Handlers) catalog(w http.ResponseWriter) (*catalogs.Catalog, bool) {
	cat, err := h.app.Catalog()
	if err != nil {
		response.ErrorFromType(w, err)
		return nil, false
	}
	return cat, true
}

// RequireReady answers 503 until the catalog is available.
func (h *Handlers) RequireReady(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := h.catalog(w); !ok {
			return
		}
		next(w, r)
	}
}

// params returns the named query parameters in order. On the first absent
// one it writes the missing-parameter response and returns false.
func params(w http.ResponseWriter, r *http.Request, names ...string) ([]string, bool) {
	q := r.URL.Query()
	values := make([]string, len(names))
	for i, name := range names {
		if !q.Has(name) {
			response.MissingParam(w, name)
			return nil, false
		}
		values[i] = q.Get(name)
	}
	return values, true
}

// cachedText serves a read-only plain-text route through the response cache.
// render returns the body, or an error mapped by response.ErrorFromType.
func (h *Handlers) cachedText(w http.ResponseWriter, r *http.Request, cat *catalogs.Catalog, render func() (string, error)) {
	key := cache.Key(cat.ID(), cat.Revision(), r.URL.RequestURI())
	if e, found := h.cache.Response(key); found {
		response.Text(w, e.Status, e.Body)
		return
	}

	body, err := render()
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	h.cache.Set(key, cache.Entry{Status: http.StatusOK, Body: body})
	response.TextOK(w, body)
}

// mutated logs a committed change with the request-scoped logger.
func (h *Handlers) mutated(r *http.Request, operation, dept, course string) {
	ctx := logging.WithDepartment(r.Context(), dept)
	if course != "" {
		ctx = logging.WithCourse(ctx, course)
	}
	logging.FromContext(logging.WithOperation(ctx, operation)).Debug().Msg("Catalog updated")
}
