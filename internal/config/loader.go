package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// maxUpwardSearchLevels limits how far up the directory tree the loader
// searches for a config file.
const maxUpwardSearchLevels = 10

// envPrefix prefixes environment overrides: LEAPVIEW_SRC_DIR -> src_dir.
const envPrefix = "LEAPVIEW_"

// findConfigIn returns the path of a config file in dir, or "".
func findConfigIn(dir string) string {
	for _, name := range []string{FileName, FileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// FindProjectRoot searches upward from startDir for a directory holding
// a leapview config file. Returns "" if none is found within the search
// limit.
func FindProjectRoot(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if findConfigIn(dir) != "" {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load resolves the project configuration. cfgFile, when non-empty, is
// an explicit config file path and its directory becomes the project
// root; otherwise the loader searches upward from the working directory
// and falls back to the working directory itself.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"src_dir":    DefaultSrcDir,
		"out_dir":    DefaultOutDir,
		"state_path": DefaultStateFile,
		"output":     DefaultOutput,
		"verbose":    false,
		"serve.addr": DefaultAddr,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	projectRoot, configPath, err := locate(cfgFile)
	if err != nil {
		return nil, err
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --watch and --addr belong to the serve section
			switch key {
			case "watch":
				return "serve.watch", posflag.FlagVal(flags, f)
			case "addr":
				return "serve.addr", posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	// Env values arrive as strings, so the decoder stays weakly typed
	// ("true" -> bool, "8517" -> int).
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.ProjectRoot = projectRoot
	cfg.ApplyDefaults()
	cfg.ResolvePaths()

	if cfg.Output != "text" && cfg.Output != "json" {
		return nil, fmt.Errorf("invalid output format %q (want text or json)", cfg.Output)
	}

	return &cfg, nil
}

// locate determines the project root and the config file to read.
func locate(cfgFile string) (root, configPath string, err error) {
	if cfgFile != "" {
		abs, err := filepath.Abs(cfgFile)
		if err != nil {
			return "", "", fmt.Errorf("resolving config path: %w", err)
		}
		if _, err := os.Stat(abs); err != nil {
			return "", "", fmt.Errorf("config file %s: %w", cfgFile, err)
		}
		return filepath.Dir(abs), abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", "", err
	}
	if found := FindProjectRoot(cwd); found != "" {
		return found, findConfigIn(found), nil
	}
	return cwd, "", nil
}
