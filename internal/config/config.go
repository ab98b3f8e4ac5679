// Package config loads go-graph-query configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for go-graph-query.
type Config struct {
	// Workers bounds the number of files extracted concurrently.
	Workers int `yaml:"workers" env:"GGQ_WORKERS"`

	// Exclude lists directory names skipped during scanning, on top of the
	// scanner defaults.
	Exclude []string `yaml:"exclude" env:"GGQ_EXCLUDE"`

	// Extensions restricts analysis to the given file extensions; empty
	// means every supported language.
	Extensions []string `yaml:"extensions" env:"GGQ_EXTENSIONS"`

	// EntryPatterns are anchored regexes naming call-graph roots that are
	// never reported as dead.
	EntryPatterns []string `yaml:"entry_patterns" env:"GGQ_ENTRY_PATTERNS"`

	// CachePath is the extraction cache location on disk.
	CachePath string `yaml:"cache_path" env:"GGQ_CACHE_PATH"`

	// CacheSize bounds the number of cached file trees.
	CacheSize int `yaml:"cache_size" env:"GGQ_CACHE_SIZE"`

	// Format is the default output format: text, json, or dot.
	Format string `yaml:"format" env:"GGQ_FORMAT"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose" env:"GGQ_VERBOSE"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Workers:       runtime.NumCPU(),
		Exclude:       nil,
		Extensions:    nil,
		EntryPatterns: []string{"^main$", "^init$", "^Test"},
		CachePath:     filepath.Join(defaultConfigDir(), "cache.msgpack"),
		CacheSize:     4096,
		Format:        "json",
		Verbose:       false,
	}
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ggq"
	}
	return filepath.Join(home, ".ggq")
}

// globalConfigFilePath returns ~/.ggq/config.yaml.
func globalConfigFilePath() string {
	return filepath.Join(defaultConfigDir(), "config.yaml")
}

// projectConfigFilePath returns ./.ggq/config.yaml.
func projectConfigFilePath() string {
	return ".ggq/config.yaml"
}

// Load reads configuration with the following priority (highest to lowest):
// 1. Environment variables
// 2. Project-level config (./.ggq/config.yaml)
// 3. Global config (~/.ggq/config.yaml)
// 4. Defaults
func Load() (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range []string{globalConfigFilePath(), projectConfigFilePath()} {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific YAML file path.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path, creating
// parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("GGQ_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Workers = n
		}
	}
	if v := os.Getenv("GGQ_EXCLUDE"); v != "" {
		cfg.Exclude = splitList(v)
	}
	if v := os.Getenv("GGQ_EXTENSIONS"); v != "" {
		cfg.Extensions = splitList(v)
	}
	if v := os.Getenv("GGQ_ENTRY_PATTERNS"); v != "" {
		cfg.EntryPatterns = splitList(v)
	}
	if v := os.Getenv("GGQ_CACHE_PATH"); v != "" {
		cfg.CachePath = v
	}
	if v := os.Getenv("GGQ_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CacheSize = n
		}
	}
	if v := os.Getenv("GGQ_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("GGQ_VERBOSE"); v != "" {
		cfg.Verbose = v == "1" || strings.EqualFold(v, "true")
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be at least 1, got %d", c.CacheSize)
	}
	switch c.Format {
	case "text", "json", "dot":
	default:
		return fmt.Errorf("format must be text, json, or dot, got %q", c.Format)
	}
	return nil
}
