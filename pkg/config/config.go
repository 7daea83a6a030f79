// Package config loads eval configuration from an optional YAML file and
// resolves the API credential from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the eval runner configuration. Command-line flags overlay
// these values; the zero-config case falls back to Default.
type Config struct {
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	MaxTokens      int    `yaml:"max_tokens"`
	Threshold      int    `yaml:"threshold"`
	APIKeyEnv      string `yaml:"api_key_env"`
	ExpectedColumn string `yaml:"expected_column"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Provider:       "anthropic",
		Model:          "claude-sonnet-4-20250514",
		MaxTokens:      1024,
		Threshold:      100,
		ExpectedColumn: "expected_output",
	}
}

// Load reads and parses a YAML config file at the given path. Fields absent
// from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from the given path. If the file does not
// exist, it returns the default configuration. Other errors (e.g. parse
// failures) are still returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config for required fields and returns a descriptive
// error if any are missing or invalid.
func (c *Config) Validate() error {
	var errs []error

	switch c.Provider {
	case "anthropic", "openai":
	default:
		errs = append(errs, fmt.Errorf("provider must be %q or %q, got %q", "anthropic", "openai", c.Provider))
	}
	if c.Model == "" {
		errs = append(errs, errors.New("model must not be empty"))
	}
	if c.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("max_tokens must be >= 1, got %d", c.MaxTokens))
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		errs = append(errs, fmt.Errorf("threshold must be between 0 and 100, got %d", c.Threshold))
	}
	if c.ExpectedColumn == "" {
		errs = append(errs, errors.New("expected_column must not be empty"))
	}

	return errors.Join(errs...)
}

// ResolveAPIKey reads the provider credential from the environment. When
// api_key_env is unset it falls back to the conventional variable for the
// configured provider. A missing credential is an error; preview mode never
// calls this.
func (c *Config) ResolveAPIKey() (string, error) {
	envVar := c.APIKeyEnv
	if envVar == "" {
		switch c.Provider {
		case "openai":
			envVar = "OPENAI_API_KEY"
		default:
			envVar = "ANTHROPIC_API_KEY"
		}
	}

	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", envVar)
	}
	return key, nil
}
