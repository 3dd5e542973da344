// Package config loads gast settings from YAML or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI and the batch compiler.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// LogFormat is console or json.
	LogFormat string `yaml:"log_format" toml:"log_format"`

	// DebugTokens logs the source text and token dump of every unit.
	DebugTokens bool `yaml:"debug_tokens" toml:"debug_tokens"`

	// DumpFormat is text or yaml.
	DumpFormat string `yaml:"dump_format" toml:"dump_format"`

	// ShowSpans prints node spans in dumps.
	ShowSpans bool `yaml:"show_spans" toml:"show_spans"`

	// Workers bounds how many units are built at once.
	Workers int `yaml:"workers" toml:"workers"`

	// Defines are echoed into the dump header.
	Defines map[string]string `yaml:"defines" toml:"defines"`

	// Path is the file the settings came from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "console",
		DumpFormat: "text",
		ShowSpans:  true,
		Workers:    runtime.NumCPU(),
		Defines:    map[string]string{},
	}
}

// Load reads path on top of the defaults. The decoder is chosen by the
// file extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q: %s", ext, path)
	}
	if cfg.Defines == nil {
		cfg.Defines = map[string]string{}
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve finds and loads the first existing config file. An explicit path
// must exist; the implicit locations are optional and defaults are used
// when none is present.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	for _, candidate := range searchPath() {
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}
	return Default(), nil
}

// searchPath lists the implicit config locations in priority order.
func searchPath() []string {
	var paths []string
	if env := os.Getenv("GAST_CONFIG"); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, ".gast.yaml", ".gast.toml", filepath.Join(Home(), "config.yaml"))
	return paths
}

// Home returns the gast data directory: $GAST_HOME, otherwise ~/.gast.
func Home() string {
	if dir := os.Getenv("GAST_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".gast")
	}
	return filepath.Join(homeDir, ".gast")
}

// Validate rejects settings the CLI cannot honor.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log_format %q", c.LogFormat)
	}
	switch c.DumpFormat {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid dump_format %q", c.DumpFormat)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// Define records a name=value pair as given on the command line.
func (c *Config) Define(pair string) error {
	name, value, ok := strings.Cut(pair, "=")
	if !ok {
		value = "true"
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("invalid define %q", pair)
	}
	if c.Defines == nil {
		c.Defines = map[string]string{}
	}
	c.Defines[name] = value
	return nil
}
