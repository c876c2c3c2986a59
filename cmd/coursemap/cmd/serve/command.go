// Package serve provides the serve command, which runs the catalog HTTP API.
package serve

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/cmd/application"
	"github.com/agentstation/coursemap/internal/server"
	"github.com/agentstation/coursemap/pkg/constants"
	"github.com/agentstation/coursemap/pkg/errors"
)

// NewCommand creates the serve command. config is read when the command
// runs, after flags have been applied.
func NewCommand(app application.Application, config func() server.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		GroupID: "core",
		Short:   "Serve the catalog HTTP API",
		Long: `Start the catalog HTTP API.

The catalog is restored from the data file, or seeded with the reference
catalog when the file does not exist. On SIGINT or SIGTERM the server drains
in-flight requests and the catalog is written back to the data file.

Change events are streamed to WebSocket clients on /updates/ws.`,
		Example: `  # Start on the default address (localhost:8080)
  coursemap serve

  # Listen on all interfaces with a custom data file
  coursemap serve --host 0.0.0.0 --port 9000 --data-file /var/lib/coursemap.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context(), app, config())
		},
	}

	cmd.Flags().String("host", constants.DefaultHost, "Bind address")
	cmd.Flags().IntP("port", "p", constants.DefaultPort, "Server port")
	cmd.Flags().Duration("cache-ttl", constants.CacheTTL, "Response cache TTL (0 disables caching)")

	return cmd
}

// Run listens on the configured address and serves until ctx is done.
func Run(ctx context.Context, app application.Application, cfg server.Config) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return errors.WrapResource("listen", "server", cfg.Addr(), err)
	}
	return Serve(ctx, app, cfg, ln)
}

// Serve starts the catalog in run mode and serves the API on ln until ctx
// is done. Shutdown drains HTTP requests before the catalog is persisted, so
// no acknowledged mutation is lost.
func Serve(ctx context.Context, app application.Application, cfg server.Config, ln net.Listener) error {
	logger := app.Logger()

	cm, err := app.Coursemap()
	if err != nil {
		_ = ln.Close()
		return err
	}
	if err := cm.Start(ctx, coursemap.ModeRun); err != nil {
		_ = ln.Close()
		return err
	}

	srv, err := server.New(app, cfg)
	if err != nil {
		_ = ln.Close()
		return errors.WrapResource("create", "server", "", err)
	}
	srv.Start()

	httpServer := srv.HTTPServer()
	serverErr := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", ln.Addr().String()).
			Str("data_file", cm.DataFile()).
			Msg("Server starting")
		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case err := <-serverErr:
		runErr = fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	// ctx is done at this point; shutdown gets its own deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout+time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("HTTP shutdown did not complete")
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Background services did not stop in time")
	}
	if err := cm.Shutdown(shutdownCtx); err != nil {
		if runErr == nil {
			runErr = err
		}
		return runErr
	}

	logger.Info().Msg("Server stopped gracefully")
	return runErr
}
