// Package list provides the list command and its subcommands.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/coursemap/cmd/application"
	"github.com/agentstation/coursemap/internal/cmd/catalog"
	"github.com/agentstation/coursemap/internal/cmd/output"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [resource]",
		GroupID: "core",
		Short:   "List departments or courses",
		Long: `List prints catalog entries as a table, or as JSON or YAML with --format.

Available subcommands:
  departments   - every department with its chair and major count
  courses       - the courses of one department`,
		Example: `  coursemap list departments
  coursemap list courses COMS --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	cmd.AddCommand(NewDepartmentsCommand(app))
	cmd.AddCommand(NewCoursesCommand(app))

	return cmd
}

// NewDepartmentsCommand creates the list departments subcommand.
func NewDepartmentsCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "departments",
		Aliases: []string{"depts", "dept"},
		Short:   "List departments",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Load(cmd.Context(), app)
			if err != nil {
				return err
			}
			return write(cmd, app, output.DepartmentRows(cat))
		},
	}
}

// NewCoursesCommand creates the list courses subcommand.
func NewCoursesCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "courses <deptCode>",
		Aliases: []string{"course"},
		Short:   "List the courses of a department",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.Load(cmd.Context(), app)
			if err != nil {
				return err
			}
			d, err := catalog.Department(cat, args[0])
			if err != nil {
				return err
			}
			return write(cmd, app, output.CourseRows(d))
		},
	}
}

func write(cmd *cobra.Command, app application.Application, data any) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), output.DetectFormat(string(format)), data)
}
