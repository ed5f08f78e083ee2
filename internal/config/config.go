// Package config loads CLI configuration for the corvo tool.
//
// Precedence (highest to lowest): flags > env vars > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Defaults.
const (
	DefaultHistoryFile = ".corvo_history"
	DefaultPrompt      = ">> "
)

// Config holds the resolved tool configuration.
type Config struct {
	// MaxLoops bounds while-loop iterations per loop; 0 disables the guard.
	MaxLoops int `koanf:"max_loops"`
	// WorkDir anchors relative paths used by file and csv statements.
	// Empty means the process working directory.
	WorkDir string `koanf:"work_dir"`
	// HistoryFile is the REPL history file name, created in the home
	// directory.
	HistoryFile string `koanf:"history_file"`
	// Prompt is the REPL input prompt.
	Prompt string `koanf:"prompt"`
	// Verbose enables extra diagnostics on stderr.
	Verbose bool `koanf:"verbose"`
}

// Package-level koanf instance and config file tracking.
var (
	k              = koanf.New(".")
	configFileUsed string
)

// findConfigFile finds the config file to use.
// Priority: explicit path > corvo.yaml > corvo.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"corvo.yaml", "corvo.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Reset clears the koanf instance. Used for testing.
func Reset() {
	k = koanf.New(".")
	configFileUsed = ""
}

// Load loads configuration from file, environment variables, and flags.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k = koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"max_loops":    0,
		"work_dir":     "",
		"history_file": DefaultHistoryFile,
		"prompt":       DefaultPrompt,
		"verbose":      false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables: CORVO_MAX_LOOPS -> max_loops
	if err := k.Load(env.Provider("CORVO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "CORVO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if cfg.MaxLoops < 0 {
		return nil, fmt.Errorf("max_loops must not be negative, got %d", cfg.MaxLoops)
	}
	return &cfg, nil
}

// FileUsed returns the path of the config file that was loaded, if any.
func FileUsed() string {
	return configFileUsed
}
