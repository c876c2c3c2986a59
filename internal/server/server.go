// Package server provides the HTTP query/update API for the coursemap catalog.
package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap/cmd/application"
	"github.com/agentstation/coursemap/internal/server/cache"
	"github.com/agentstation/coursemap/internal/server/events"
	"github.com/agentstation/coursemap/internal/server/events/adapters"
	ws "github.com/agentstation/coursemap/internal/server/websocket"
	"github.com/agentstation/coursemap/pkg/catalogs"
	"github.com/agentstation/coursemap/pkg/constants"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	cache     *cache.Cache
	broker    *events.Broker
	wsHub     *ws.Hub
	upgrader  websocket.Upgrader
	logger    *zerolog.Logger
	config    Config
	ctx       context.Context
	cancel    context.CancelFunc
	done      chan struct{}
	started   atomic.Bool
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = constants.ShutdownTimeout
	}

	broker := events.NewBroker(logger)
	wsHub := ws.NewHub(logger)

	// Subscribe transports to broker; registration is buffered so this is
	// safe before Run.
	broker.Subscribe(adapters.NewWebSocketSubscriber(wsHub))
	logger.Debug().Msg("WebSocket transport subscribed to event broker")

	ctx, cancel := context.WithCancel(context.Background())

	server := &Server{
		app:    app,
		cache:  cache.New(cfg.CacheTTL, constants.CacheCleanupInterval),
		broker: broker,
		wsHub:  wsHub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		logger:    logger,
		config:    cfg,
		ctx:       ctx,
		cancel:    cancel,
		done:      make(chan struct{}),
		startTime: time.Now(),
	}

	if err := server.connectHooks(); err != nil {
		cancel()
		return nil, err
	}

	logger.Debug().Msg("Server instance created")
	return server, nil
}

// connectHooks registers a change hook that invalidates the response cache
// and publishes the change to the event broker.
func (s *Server) connectHooks() error {
	cm, err := s.app.Coursemap()
	if err != nil {
		return err
	}

	cm.OnChange(func(change catalogs.Change) {
		s.cache.Clear()
		s.broker.Publish(events.EventType(change.Type), change)
		s.logger.Debug().
			Str("type", string(change.Type)).
			Str("dept", change.Department).
			Str("course", change.Course).
			Uint64("revision", change.Revision).
			Msg("Catalog change published")
	})
	return nil
}

// Start starts background services (broker, WebSocket hub).
func (s *Server) Start() {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.logger.Debug().Msg("Starting background services")

	brokerDone := make(chan struct{})
	hubDone := make(chan struct{})
	go func() {
		defer close(brokerDone)
		s.broker.Run(s.ctx)
	}()
	go func() {
		defer close(hubDone)
		s.wsHub.Run(s.ctx)
	}()
	go func() {
		<-brokerDone
		<-hubDone
		close(s.done)
	}()
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// HTTPServer builds the net/http server for the configured address.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services. It waits for them until ctx is done
// when Start has been called.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server background services")
	s.cancel()
	if !s.started.Load() {
		return nil
	}

	select {
	case <-s.done:
		s.logger.Info().Msg("Background services shut down successfully")
	case <-ctx.Done():
		s.logger.Warn().Msg("Background services shutdown timed out")
	case <-time.After(s.config.ShutdownTimeout):
		s.logger.Warn().Msg("Background services shutdown timed out")
	}
	return nil
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// WSHub returns the WebSocket hub.
func (s *Server) WSHub() *ws.Hub {
	return s.wsHub
}

// Broker returns the event broker for publishing events.
func (s *Server) Broker() *events.Broker {
	return s.broker
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
