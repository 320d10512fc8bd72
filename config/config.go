// Package config provides the application configuration: an optional
// YAML file with defaults applied, plus environment overrides for the
// secrets that should never live in a file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the shop assistant configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Scraper   ScraperConfig   `yaml:"scraper"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	LLM       LLMConfig       `yaml:"llm"`
	Data      DataConfig      `yaml:"data"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// ScraperConfig holds listing-page scraper settings.
type ScraperConfig struct {
	MaxProducts int `yaml:"max_products"`
	TimeoutSec  int `yaml:"timeout_sec"`
}

// RetrievalConfig holds retrieval defaults supplied to the core.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// LLMConfig holds text-generation backend settings. APIKey is only ever
// read from the LLM_API_KEY environment variable.
type LLMConfig struct {
	Provider   string `yaml:"provider"` // "gemini" (default) or "groq"
	Model      string `yaml:"model"`    // provider default if empty
	TimeoutSec int    `yaml:"timeout_sec"`
	APIKey     string `yaml:"-"`
}

// DataConfig holds snapshot persistence settings.
type DataConfig struct {
	SnapshotPath string `yaml:"snapshot_path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Load reads the configuration from path (optional: an empty path or a
// missing file yields pure defaults), applies defaults and environment
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from a command-line flag
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.ApplyDefaults()
	cfg.applyEnv()

	if conflicts := cfg.Validate(); len(conflicts) > 0 {
		return nil, fmt.Errorf("invalid configuration: %v", conflicts)
	}
	return cfg, nil
}

// ApplyDefaults applies default values to unset fields.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Scraper.MaxProducts == 0 {
		c.Scraper.MaxProducts = 20
	}
	if c.Scraper.TimeoutSec == 0 {
		c.Scraper.TimeoutSec = 30
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = 5
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.TimeoutSec == 0 {
		c.LLM.TimeoutSec = 30
	}
	if c.Data.SnapshotPath == "" {
		c.Data.SnapshotPath = "data/scraped.json"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// applyEnv applies environment overrides: the API key always comes from
// the environment, and LLM_MODEL may switch the provider at run time.
func (c *Config) applyEnv() {
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if provider := os.Getenv("LLM_MODEL"); provider != "" {
		c.LLM.Provider = provider
	}
}

// Validate checks field values for basic requirements and returns a list
// of conflict messages.
func (c *Config) Validate() []string {
	var conflicts []string

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		conflicts = append(conflicts, fmt.Sprintf("server port %d out of range", c.Server.Port))
	}
	if c.Scraper.MaxProducts < 0 {
		conflicts = append(conflicts, "scraper max_products cannot be negative")
	}
	if c.Retrieval.TopK < 0 {
		conflicts = append(conflicts, "retrieval top_k cannot be negative")
	}
	switch c.LLM.Provider {
	case "gemini", "groq":
	default:
		conflicts = append(conflicts, "llm provider must be 'gemini' or 'groq', got '"+c.LLM.Provider+"'")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		conflicts = append(conflicts, "logging level must be one of debug, info, warn, error")
	}

	return conflicts
}
