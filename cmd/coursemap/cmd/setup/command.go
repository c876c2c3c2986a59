// Package setup provides the setup command, which regenerates the data file.
package setup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/coursemap"
	"github.com/agentstation/coursemap/cmd/application"
)

// NewCommand creates the setup command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "setup",
		GroupID: "management",
		Short:   "Write the reference catalog to the data file",
		Long: `Setup seeds the reference catalog and writes it to the data file,
replacing whatever the file held before. Use it to create the file on a new
host or to repair a file that no longer decodes.`,
		Example: `  coursemap setup
  coursemap setup --data-file ./catalog.bin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cm, err := app.Coursemap()
			if err != nil {
				return err
			}
			if err := cm.Start(cmd.Context(), coursemap.ModeSetup); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Reference catalog written to %s\n", cm.DataFile())
			return err
		},
	}
}
