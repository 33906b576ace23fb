package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/pkg/catalogue"
)

// NewCatalogueCommand creates the catalogue command.
func NewCatalogueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "Show the effective component catalogue",
		Long: `Print the component names valid as markup tags: the builtin set, or
the components from the catalogue file the project configures.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			components, err := catalogue.Load(cmdCtx.Config.Catalogue)
			if err != nil {
				return err
			}

			if cmdCtx.Config.Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"components": components})
			}

			source := "builtin"
			if cmdCtx.Config.Catalogue != "" {
				source = cmdCtx.Config.Catalogue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n",
				cmdCtx.Styles.Header.Render(fmt.Sprintf("Components (%d, %s)", len(components), source)))
			for _, name := range components {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
			}
			return nil
		},
	}
}
