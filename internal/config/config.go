// Package config loads project configuration for the leapview toolchain.
// Precedence (highest to lowest): flags > environment > config file >
// defaults.
package config

import "path/filepath"

// Config file names, checked in order.
const (
	FileName    = "leapview.yaml"
	FileNameAlt = "leapview.yml"
)

// Default configuration values.
const (
	DefaultSrcDir    = "src"
	DefaultOutDir    = "dist"
	DefaultStateFile = ".leapview/state.db"
	DefaultAddr      = ":8517"
	DefaultOutput    = "text"
)

// ServeConfig holds dev-server settings.
type ServeConfig struct {
	Addr  string `koanf:"addr"`
	Watch bool   `koanf:"watch"`
}

// Config is the resolved project configuration.
type Config struct {
	// ProjectRoot is the directory all relative paths resolve against.
	// Set by the loader, never read from file.
	ProjectRoot string `koanf:"-"`

	// SrcDir holds the compilation units (*.lsx).
	SrcDir string `koanf:"src_dir"`

	// OutDir receives compiled scenario documents.
	OutDir string `koanf:"out_dir"`

	// Catalogue optionally points at a YAML component catalogue; empty
	// means the builtin set.
	Catalogue string `koanf:"catalogue"`

	// StatePath is the sqlite database recording compile results.
	StatePath string `koanf:"state_path"`

	// Output selects diagnostic rendering: text or json.
	Output string `koanf:"output"`

	Verbose bool `koanf:"verbose"`

	Serve ServeConfig `koanf:"serve"`
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.SrcDir == "" {
		c.SrcDir = DefaultSrcDir
	}
	if c.OutDir == "" {
		c.OutDir = DefaultOutDir
	}
	if c.StatePath == "" {
		c.StatePath = DefaultStateFile
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = DefaultAddr
	}
}

// ResolvePaths rebases the relative path fields onto the project root.
func (c *Config) ResolvePaths() {
	c.SrcDir = resolveRelativeTo(c.SrcDir, c.ProjectRoot)
	c.OutDir = resolveRelativeTo(c.OutDir, c.ProjectRoot)
	c.Catalogue = resolveRelativeTo(c.Catalogue, c.ProjectRoot)
	c.StatePath = resolveRelativeTo(c.StatePath, c.ProjectRoot)
}

func resolveRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
