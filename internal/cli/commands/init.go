package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapview/internal/cli/output"
	"github.com/leapstack-labs/leapview/internal/config"
)

const initConfigTemplate = `# leapview project configuration
src_dir: src
out_dir: dist

# catalogue: components.yaml

serve:
  addr: ":8517"
`

const initExampleUnit = `export const SCENARIO = {
	key: "hello",
	name: "Hello",
	description: "A first scenario",
	version: "1.0.0"
}

export default function App() {
	return (
		<Column style={{ padding: 16, gap: 8 }}>
			<Text style={{ fontSize: 24 }}>Hello, leapview</Text>
			<Button onPress={() => console.log("pressed")}>Press me</Button>
		</Column>
	)
}
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new leapview project",
		Long: `Initialize a new leapview project with a configuration file and a
src/ directory holding an example unit.`,
		Example: `  # Initialize in the current directory
  leapview init

  # Initialize a new directory
  leapview init my-app`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration")
	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	styles := output.NewStyles()

	if dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.FileName)
	if fileExists(configPath) && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", config.FileName)
	}

	srcDir := filepath.Join(dir, config.DefaultSrcDir)
	if err := os.MkdirAll(srcDir, 0o750); err != nil {
		return fmt.Errorf("failed to create source directory: %w", err)
	}

	files := []struct {
		path    string
		content string
	}{
		{configPath, initConfigTemplate},
		{filepath.Join(srcDir, "app.lsx"), initExampleUnit},
	}
	for _, f := range files {
		path, content := f.path, f.content
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", styles.Success.Render("created"), path)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, styles.Success.Render("leapview project initialized"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit src/app.lsx")
	fmt.Fprintln(out, "  2. Run 'leapview compile'")
	fmt.Fprintln(out, "  3. Run 'leapview serve --watch' for live development")
	return nil
}
