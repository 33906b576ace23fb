package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes a leapview.yaml into a fresh temp dir and
// returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfgPath := writeConfigFile(t, "src_dir: src\n")
	root := filepath.Dir(cfgPath)

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, DefaultSrcDir), cfg.SrcDir)
	assert.Equal(t, filepath.Join(root, DefaultOutDir), cfg.OutDir)
	assert.Equal(t, filepath.Join(root, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultAddr, cfg.Serve.Addr)
	assert.False(t, cfg.Serve.Watch)
	assert.Empty(t, cfg.Catalogue, "catalogue should stay unset by default")
}

func TestLoad_FileValues(t *testing.T) {
	cfgPath := writeConfigFile(t, `src_dir: screens
out_dir: build
output: json
serve:
  addr: ":9000"
  watch: true
`)
	root := filepath.Dir(cfgPath)

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "screens"), cfg.SrcDir)
	assert.Equal(t, filepath.Join(root, "build"), cfg.OutDir)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, ":9000", cfg.Serve.Addr)
	assert.True(t, cfg.Serve.Watch)
}

func TestLoad_InvalidOutputFormat(t *testing.T) {
	cfgPath := writeConfigFile(t, "output: xml\n")

	_, err := Load(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	cfgPath := writeConfigFile(t, "src_dir: from_file\n")
	root := filepath.Dir(cfgPath)

	t.Setenv("LEAPVIEW_SRC_DIR", "from_env")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "from_env"), cfg.SrcDir, "env var should override config file")
}

func TestLoad_EnvStringDecodesIntoBool(t *testing.T) {
	cfgPath := writeConfigFile(t, "src_dir: src\n")

	t.Setenv("LEAPVIEW_VERBOSE", "true")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.True(t, cfg.Verbose, "env string value should decode into the bool field")
}

func TestLoad_FlagOverridesEnv(t *testing.T) {
	cfgPath := writeConfigFile(t, "src_dir: from_file\n")
	root := filepath.Dir(cfgPath)

	t.Setenv("LEAPVIEW_SRC_DIR", "from_env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("src-dir", "", "source directory")
	require.NoError(t, flags.Set("src-dir", "from_flag"))

	cfg, err := Load(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "from_flag"), cfg.SrcDir, "flag value should override config file and env var")
}

func TestLoad_UnchangedFlagFallsThrough(t *testing.T) {
	cfgPath := writeConfigFile(t, "src_dir: from_file\n")
	root := filepath.Dir(cfgPath)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("src-dir", "", "source directory")
	// Changed stays false, so the file value wins.

	cfg, err := Load(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "from_file"), cfg.SrcDir)
}

func TestLoad_ServeFlagsRemap(t *testing.T) {
	cfgPath := writeConfigFile(t, "src_dir: src\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("addr", DefaultAddr, "listen address")
	flags.Bool("watch", false, "watch sources")
	require.NoError(t, flags.Set("addr", ":7000"))
	require.NoError(t, flags.Set("watch", "true"))

	cfg, err := Load(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Serve.Addr)
	assert.True(t, cfg.Serve.Watch)
}

func TestLoad_AbsolutePathsStayAbsolute(t *testing.T) {
	stateDir := t.TempDir()
	statePath := filepath.Join(stateDir, "state.db")
	cfgPath := writeConfigFile(t, "state_path: "+statePath+"\n")

	cfg, err := Load(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, statePath, cfg.StatePath)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "screens")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("src_dir: src\n"), 0600))

	assert.Equal(t, root, FindProjectRoot(nested), "search should walk up to the config file")
	assert.Equal(t, root, FindProjectRoot(root))
}

func TestFindProjectRoot_NotFound(t *testing.T) {
	// A bare temp dir has no config anywhere near it within the search
	// limit, as long as nothing above it carries one.
	dir := t.TempDir()
	got := FindProjectRoot(dir)
	if got != "" {
		// Some environments may have a stray config higher up; the
		// result must then at least not be the temp dir itself.
		assert.NotEqual(t, dir, got)
	}
}

func TestFindProjectRoot_AltExtension(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileNameAlt), []byte("src_dir: src\n"), 0600))

	assert.Equal(t, root, FindProjectRoot(root))
}
