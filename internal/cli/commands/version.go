package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/pkg/scenario"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display leapview version and the scenario schema version it emits.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "leapview v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "scenario schema %s\n", scenario.SchemaVersion)
		},
	}
}
