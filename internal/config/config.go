package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name inside the data directory.
const FileName = "smartcart.yaml"

// Config is the top-level smartcart.yaml configuration.
type Config struct {
	Display DisplayConfig `yaml:"display"`
	Budget  BudgetConfig  `yaml:"budget"`
	Git     GitConfig     `yaml:"git"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// BudgetConfig holds budgeting thresholds.
type BudgetConfig struct {
	// WarnRatio is the remaining/allocation ratio under which an
	// envelope is flagged, e.g. 0.2 for a below-20% warning.
	WarnRatio float64 `yaml:"warn_ratio"`
	// SavingsGoal is the default savings target for a fresh store.
	SavingsGoal float64 `yaml:"savings_goal"`
}

// GitConfig controls git integration for the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads smartcart.yaml from a data directory.
func Load(dataDir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, FileName))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads the config, falling back to defaults when the
// file does not exist.
func LoadOrDefault(dataDir string) (*Config, error) {
	cfg, err := Load(dataDir)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the config to a data directory.
func Save(dataDir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, FileName), data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new data dir.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Currency: "₹",
		},
		Budget: BudgetConfig{
			WarnRatio:   0.2,
			SavingsGoal: 100000,
		},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "smartcart",
			AuthorEmail: "bot@smartcart.dev",
		},
	}
}
