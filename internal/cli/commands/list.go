package commands

import (
	"encoding/json"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List compiled scenarios",
		Long:  `List every scenario recorded in the state database with its metadata.`,
		Example: `  # List compiled scenarios
  leapview list

  # List as JSON
  leapview list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			records, err := cmdCtx.Store.ListScenarios()
			if err != nil {
				return err
			}

			if cmdCtx.Config.Output == "json" {
				type row struct {
					Key         string    `json:"key"`
					Name        string    `json:"name"`
					Description string    `json:"description"`
					Version     string    `json:"version"`
					SourcePath  string    `json:"sourcePath"`
					OutputPath  string    `json:"outputPath"`
					CompiledAt  time.Time `json:"compiledAt"`
				}
				rows := make([]row, 0, len(records))
				for _, rec := range records {
					rows = append(rows, row{
						Key:         rec.Key,
						Name:        rec.Name,
						Description: rec.Description,
						Version:     rec.Version,
						SourcePath:  rec.SourcePath,
						OutputPath:  rec.OutputPath,
						CompiledAt:  rec.CompiledAt,
					})
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{"scenarios": rows})
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"KEY", "NAME", "VERSION", "SOURCE", "COMPILED"})
			for _, rec := range records {
				t.AppendRow(table.Row{
					rec.Key, rec.Name, rec.Version, rec.SourcePath,
					rec.CompiledAt.Local().Format(time.RFC3339),
				})
			}
			t.Render()
			return nil
		},
	}
}
