package app

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/coursemap/cmd/coursemap/cmd/list"
	"github.com/agentstation/coursemap/cmd/coursemap/cmd/serve"
	"github.com/agentstation/coursemap/cmd/coursemap/cmd/setup"
	"github.com/agentstation/coursemap/cmd/coursemap/cmd/show"
	"github.com/agentstation/coursemap/internal/server"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(serve.NewCommand(a, a.serverConfig))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(list.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(setup.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// serverConfig is evaluated when serve runs, after flags are applied.
func (a *App) serverConfig() server.Config {
	return a.config.Server()
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, err := fmt.Fprintf(out,
				"coursemap version %s\ncommit: %s\nbuilt: %s\nbuilt by: %s\ngo version: %s\nplatform: %s/%s\n",
				a.version, a.commit, a.date, a.builtBy,
				runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
