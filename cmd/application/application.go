// Package application provides the application interface for coursemap commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            cat, err := app.Catalog()
//	            if err != nil {
//	                return err
//	            }
//	            fmt.Print(cat)
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    CoursemapFunc: func() (coursemap.Client, error) {
//	        return testClient, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/pkg/catalogs"
)

// Application provides the application interface that commands need.
// The App struct from cmd/coursemap/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Coursemap returns the process-wide service. The same instance is
	// returned on every call; its lifecycle is owned by the App.
	Coursemap() (coursemap.Client, error)

	// Catalog returns the live catalog of the service. It fails with a
	// not-ready error until the service has been started in run mode.
	Catalog() (*catalogs.Catalog, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, text).
	OutputFormat() string

	// Version returns the application version string.
	Version() string
}
