package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/internal/engine"
)

// NewCompileCommand creates the compile command.
func NewCompileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [units...]",
		Short: "Compile scenario units into JSON documents",
		Long: `Compile .lsx units into scenario JSON documents.

Without arguments, every unit under the source directory is compiled.
Compiled documents are written to the output directory and recorded in
the state database.`,
		Example: `  # Compile the whole project
  leapview compile

  # Compile specific units
  leapview compile src/home.lsx src/checkout.lsx

  # Machine-readable results
  leapview compile --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, engine.BuildOptions{Write: true})
		},
	}
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [units...]",
		Short: "Compile units without writing output",
		Long: `Compile .lsx units and report diagnostics without writing any
documents or touching the state database. Exits non-zero when any unit
fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, engine.BuildOptions{Write: false})
		},
	}
}

func runBuild(cmd *cobra.Command, args []string, opts engine.BuildOptions) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	var result *engine.BuildResult
	if len(args) > 0 {
		result, err = cmdCtx.Engine.BuildPaths(cmd.Context(), args, opts)
	} else {
		result, err = cmdCtx.Engine.Build(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	if cmdCtx.Config.Output == "json" {
		if err := printBuildJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		printBuildText(cmd.OutOrStdout(), cmdCtx, result)
	}

	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("%d unit(s) failed", failed)
	}
	return nil
}

func printBuildText(w io.Writer, cmdCtx *CommandContext, result *engine.BuildResult) {
	s := cmdCtx.Styles
	for _, u := range result.Units {
		switch {
		case u.Err != nil:
			fmt.Fprintf(w, "%s %s\n    %s\n",
				s.Error.Render("✗"), u.Path, s.Error.Render(u.Err.Error()))
		default:
			line := fmt.Sprintf("%s %s %s %s",
				s.Success.Render("✓"), u.Path,
				s.Key.Render(u.Key),
				s.Muted.Render(u.Duration.Round(time.Millisecond).String()))
			fmt.Fprintln(w, line)
		}
		for _, warning := range u.Warnings {
			fmt.Fprintf(w, "    %s %s\n", s.Warning.Render("warning:"), warning)
		}
	}
	fmt.Fprintln(w, result.Summary())
}

// buildJSONUnit is the JSON projection of one unit result.
type buildJSONUnit struct {
	Path       string   `json:"path"`
	Key        string   `json:"key,omitempty"`
	OutputPath string   `json:"outputPath,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	DurationMS int64    `json:"durationMs"`
	Error      string   `json:"error,omitempty"`
}

func printBuildJSON(w io.Writer, result *engine.BuildResult) error {
	units := make([]buildJSONUnit, 0, len(result.Units))
	for _, u := range result.Units {
		unit := buildJSONUnit{
			Path:       u.Path,
			Key:        u.Key,
			OutputPath: u.OutputPath,
			Warnings:   u.Warnings,
			DurationMS: u.Duration.Milliseconds(),
		}
		if u.Err != nil {
			unit.Error = u.Err.Error()
		}
		units = append(units, unit)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"units":      units,
		"succeeded":  result.Succeeded(),
		"failed":     result.Failed(),
		"durationMs": result.Duration.Milliseconds(),
	})
}
