// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultStoreFile is the on-disk store filename under the state directory.
const DefaultStoreFile = "resume-tailor.db"

// Config is the CLI configuration, loadable from a JSON file. All fields are
// optional; missing values use defaults or come from flags and environment.
type Config struct {
	// APIKey is the Gemini API key. The GEMINI_API_KEY environment variable
	// takes precedence.
	APIKey string `json:"api_key,omitempty"`

	// StorePath is the SQLite file holding the master profile and snapshots.
	StorePath string `json:"store_path,omitempty"`

	// Model selects the generation tier: lite, standard, or advanced.
	Model string `json:"model,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `json:"verbose,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnvironment overlays environment variables onto the config.
// GEMINI_API_KEY wins over the file's api_key.
func (c *Config) FromEnvironment() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if path := os.Getenv("RESUME_TAILOR_STORE"); path != "" {
		c.StorePath = path
	}
}

// Validate checks that the configuration has valid values. Required fields
// are checked by the commands that need them, after flag merging.
func (c *Config) Validate() error {
	switch c.Model {
	case "", "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: unknown model tier %q", c.Model)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Bool fields are not merged; flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}

	return result
}

// DefaultStorePath returns the store location under the user config
// directory, falling back to the working directory.
func DefaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultStoreFile
	}
	return filepath.Join(dir, "resume-tailor", DefaultStoreFile)
}
