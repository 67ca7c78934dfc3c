package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all selfcare configuration.
type Config struct {
	// Active identity; every stored key is scoped to it.
	User string `yaml:"user" env:"SELFCARE_USER"`

	Storage     StorageConfig     `yaml:"storage"`
	Progression ProgressionConfig `yaml:"progression"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type StorageConfig struct {
	// Empty means ~/.selfcare.db.
	DatabasePath string `yaml:"database_path" env:"SELFCARE_DB_PATH"`
	// Optional catalog override; empty uses the built-in templates.
	CatalogPath string `yaml:"catalog_path" env:"SELFCARE_CATALOG"`
}

type ProgressionConfig struct {
	// Re-award experience when an already completed mission is completed again.
	AwardRepeatCompletions bool `yaml:"award_repeat_completions" env:"SELFCARE_AWARD_REPEAT"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"SELFCARE_LOG_LEVEL"` // debug, info, warn, error
	File  string `yaml:"file" env:"SELFCARE_LOG_FILE"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		User: "guest",
		Progression: ProgressionConfig{
			AwardRepeatCompletions: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// DefaultPath is ~/.config/selfcare/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "selfcare.yaml"
	}
	return filepath.Join(dir, "selfcare", "config.yaml")
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.User = strings.TrimSpace(cfg.User)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.User) == "" {
		return fmt.Errorf("user is required")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level %q", c.Logging.Level)
	}
	return nil
}
