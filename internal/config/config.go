// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv
const (
	EnvAPIKey       = "GEMINI_API_KEY"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvPort         = "SKILLSCAN_PORT"
	EnvJitterPolicy = "SKILLSCAN_JITTER_POLICY"
	EnvModel        = "SKILLSCAN_MODEL"
	EnvUseBrowser   = "SKILLSCAN_USE_BROWSER"
)

// DefaultPort is the HTTP port used when none is configured.
const DefaultPort = 8080

// Config represents the settings shared by every command. It can be loaded
// from a JSON or YAML file; missing values fall back to the environment.
type Config struct {
	APIKey       string `json:"api_key,omitempty" yaml:"api_key,omitempty"`             // Gemini API key
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`                 // Model tier or explicit model name
	DatabaseURL  string `json:"database_url,omitempty" yaml:"database_url,omitempty"`   // PostgreSQL connection URL
	Port         int    `json:"port,omitempty" yaml:"port,omitempty"`                   // HTTP port for serve
	JitterPolicy string `json:"jitter_policy,omitempty" yaml:"jitter_policy,omitempty"` // additive or multiplicative
	UseBrowser   bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`     // Headless browser fallback for question pages
	RequireAuth  bool   `json:"require_auth,omitempty" yaml:"require_auth,omitempty"`   // Require JWT on generation endpoints
	Verbose      bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`             // Debug logging
}

// LoadConfig loads configuration from a JSON or YAML file, picked by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables. Malformed numeric or
// boolean values are ignored and left at their zero value.
func FromEnv() Config {
	cfg := Config{
		APIKey:       os.Getenv(EnvAPIKey),
		Model:        os.Getenv(EnvModel),
		DatabaseURL:  os.Getenv(EnvDatabaseURL),
		JitterPolicy: os.Getenv(EnvJitterPolicy),
	}
	if port, err := strconv.Atoi(os.Getenv(EnvPort)); err == nil {
		cfg.Port = port
	}
	if useBrowser, err := strconv.ParseBool(os.Getenv(EnvUseBrowser)); err == nil {
		cfg.UseBrowser = useBrowser
	}
	return cfg
}

// Load reads the optional config file at path and fills the gaps from the
// environment and built-in defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(FromEnv())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
// Required values such as the API key are checked by the commands that need them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}

	switch strings.ToLower(strings.TrimSpace(c.JitterPolicy)) {
	case "", "additive", "multiplicative":
	default:
		return fmt.Errorf("config error: 'jitter_policy' must be additive or multiplicative, got %q", c.JitterPolicy)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JitterPolicy == "" {
		result.JitterPolicy = defaults.JitterPolicy
	}

	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bools: a true on either side wins, since unset and false look the same.
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.RequireAuth = result.RequireAuth || defaults.RequireAuth
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
