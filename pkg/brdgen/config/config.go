// Package config loads pipeline configuration with layered precedence:
// built-in defaults, then an optional brdgen.yaml file, then BRDGEN_*
// environment variables. Command-line flags override on top in cmd.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// ConfigFileName is the default config file name.
const ConfigFileName = "brdgen.yaml"

// ConfigFileNameAlt is the alternate config file name.
const ConfigFileNameAlt = "brdgen.yml"

// envPrefix namespaces the environment variables read by Load.
const envPrefix = "BRDGEN_"

// Config holds all pipeline settings.
type Config struct {
	// OutputDir is the directory artifacts are written to.
	OutputDir string `koanf:"output_dir"`
	// Model is the Gemini model name.
	Model string `koanf:"model"`
	// APIKey is the Gemini API key. Usually supplied via BRDGEN_API_KEY
	// or GEMINI_API_KEY rather than the config file.
	APIKey string `koanf:"api_key"`
	// Catalog is an optional path to a site-specific OOTB catalog file.
	Catalog string `koanf:"catalog"`
	// TimeoutSeconds bounds the model call.
	TimeoutSeconds int `koanf:"timeout_seconds"`
	// MaxOutputTokens caps the model response size.
	MaxOutputTokens int `koanf:"max_output_tokens"`
	// Debug enables debug logging.
	Debug bool `koanf:"debug"`
}

// defaults are the built-in settings, overridden by file then environment.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"output_dir":        "outputs",
		"model":             "gemini-2.5-pro",
		"timeout_seconds":   300,
		"max_output_tokens": 65536,
		"debug":             false,
	}
}

// Load builds a Config. cfgFile may be empty, in which case brdgen.yaml or
// brdgen.yml in dir is used when present; a missing config file is not an
// error. An explicitly named file that cannot be read is.
func Load(cfgFile, dir string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	explicit := cfgFile != ""
	if cfgFile == "" {
		cfgFile = findConfigFile(dir)
	}
	if cfgFile != "" {
		err := k.Load(file.Provider(cfgFile), yaml.Parser())
		if err != nil && explicit {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	// BRDGEN_OUTPUT_DIR -> output_dir
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	return &cfg, nil
}

// ResolveAPIKey returns the API key with fallback to the GEMINI_API_KEY
// environment variable. BRDGEN_API_KEY is already layered in by Load.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv("GEMINI_API_KEY")
}

// findConfigFile returns the config file path in dir, or "".
func findConfigFile(dir string) string {
	for _, name := range []string{ConfigFileName, ConfigFileNameAlt} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
