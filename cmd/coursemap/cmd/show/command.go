// Package show provides the show command, which prints catalog renders.
package show

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/coursemap/cmd/application"
	"github.com/agentstation/coursemap/internal/cmd/catalog"
)

// NewCommand creates the show command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "show [deptCode]",
		GroupID: "core",
		Short:   "Print the catalog or one department",
		Long: `Show prints the catalog as the API renders it. With a department code
only that department is printed, exactly as /retrieveDept returns it.

The data file is read but never written.`,
		Example: `  coursemap show
  coursemap show COMS`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(cmd.Context(), app)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err = fmt.Fprint(cmd.OutOrStdout(), cat.String())
				return err
			}

			d, err := catalog.Department(cat, args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), d.String())
			return err
		},
	}
}
