// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv
const (
	EnvDataPath  = "PORTFOLIO_DATA"
	EnvOutputDir = "PORTFOLIO_OUTPUT_DIR"
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvAPIKeyAlt = "API_KEY"
	EnvPort      = "PORT"
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or CLI flags.
type Config struct {
	// Paths
	DataPath  string `json:"data,omitempty" yaml:"data,omitempty"`             // Portfolio data file; empty uses the bundled data
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"` // Directory the CV is exported to

	// CV
	MaxProjects int `json:"max_projects,omitempty" yaml:"max_projects,omitempty"` // Projects rendered; -1 renders all

	// Assistant
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty" yaml:"model,omitempty"`     // Overrides the standard-tier model

	// Server
	Host           string   `json:"host,omitempty" yaml:"host,omitempty"`
	Port           int      `json:"port,omitempty" yaml:"port,omitempty"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	ContactEmail   string   `json:"contact_email,omitempty" yaml:"contact_email,omitempty"` // Defaults to the profile email

	// Behavior
	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the values used when neither file, environment nor flags set a field
func Defaults() Config {
	return Config{
		OutputDir:   ".",
		MaxProjects: 4,
		Port:        8080,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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

// ApplyEnv fills empty fields from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if c.DataPath == "" {
		c.DataPath = getenv(EnvDataPath)
	}
	if c.OutputDir == "" {
		c.OutputDir = getenv(EnvOutputDir)
	}
	if c.APIKey == "" {
		c.APIKey = getenv(EnvAPIKey)
	}
	if c.APIKey == "" {
		c.APIKey = getenv(EnvAPIKeyAlt)
	}
	if c.Port == 0 {
		if v := getenv(EnvPort); v != "" {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config error: %s must be a number: %w", EnvPort, err)
			}
			c.Port = port
		}
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxProjects < -1 {
		return fmt.Errorf("config error: 'max_projects' must be -1 (all) or non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ContactEmail != "" {
		if err := validator.New().Var(c.ContactEmail, "email"); err != nil {
			return fmt.Errorf("config error: 'contact_email' is not a valid address: %s", c.ContactEmail)
		}
	}

	// Validate file paths exist (if specified)
	if c.DataPath != "" {
		if _, err := os.Stat(c.DataPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: data file not found: %s", c.DataPath)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DataPath == "" {
		result.DataPath = defaults.DataPath
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Host == "" {
		result.Host = defaults.Host
	}
	if result.ContactEmail == "" {
		result.ContactEmail = defaults.ContactEmail
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}

	// Int fields: use default if zero
	if result.MaxProjects == 0 {
		result.MaxProjects = defaults.MaxProjects
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Addr returns the listen address for the server
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
