// Package config loads the persisted user settings and the repository's
// commit-lint configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/lieyanc/czai/internal/git"
	"github.com/lieyanc/czai/internal/llm"
)

// CurrentConfigVersion is bumped when new config fields are added.
// Existing configs with a lower version trigger a migration prompt.
//
//	v1: provider, mode, model, base_url, max_retries, language
//	v2: validation_max_retries, max_diff_chars, max_diff_tokens
const CurrentConfigVersion = 2

// Config is the persisted user configuration. API keys are never stored.
type Config struct {
	ConfigVersion        int    `yaml:"config_version"`
	Provider             string `yaml:"provider"`
	Mode                 string `yaml:"mode"`
	Model                string `yaml:"model,omitempty"`
	BaseURL              string `yaml:"base_url,omitempty"`
	MaxRetries           int    `yaml:"max_retries"`
	ValidationMaxRetries int    `yaml:"validation_max_retries"`
	Language             string `yaml:"language"`
	// MaxDiffChars cuts the staged diff before it is sent; 0 disables.
	MaxDiffChars int `yaml:"max_diff_chars"`
	// MaxDiffTokens is the token budget for the diff; 0 picks a
	// provider-specific default.
	MaxDiffTokens int `yaml:"max_diff_tokens"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ConfigVersion:        CurrentConfigVersion,
		Provider:             string(llm.ProviderOpenAI),
		Mode:                 string(llm.ModeAuto),
		MaxRetries:           llm.DefaultMaxRetries,
		ValidationMaxRetries: llm.DefaultValidationMaxRetries,
		Language:             "en",
		MaxDiffChars:         git.DefaultMaxDiffChars,
	}
}

// NeedsMigration returns true if the config was created with an older
// version and new fields need to be presented to the user.
func NeedsMigration(cfg *Config) bool {
	return cfg.ConfigVersion < CurrentConfigVersion
}

// ApplyDefaults fills the fields introduced after fromVersion and stamps the
// current version.
func ApplyDefaults(cfg *Config, fromVersion int) {
	defaults := DefaultConfig()
	if fromVersion < 1 {
		if cfg.Mode == "" {
			cfg.Mode = defaults.Mode
		}
		if cfg.MaxRetries <= 0 {
			cfg.MaxRetries = defaults.MaxRetries
		}
		if cfg.Language == "" {
			cfg.Language = defaults.Language
		}
	}
	if fromVersion < 2 {
		if cfg.ValidationMaxRetries <= 0 {
			cfg.ValidationMaxRetries = defaults.ValidationMaxRetries
		}
		if cfg.MaxDiffChars <= 0 {
			cfg.MaxDiffChars = defaults.MaxDiffChars
		}
	}
	cfg.ConfigVersion = CurrentConfigVersion
}

// Validate rejects values the generation flow cannot use.
func (c *Config) Validate() error {
	if c.Mode != string(llm.ModeAuto) && c.Mode != string(llm.ModeManual) {
		return fmt.Errorf("mode must be %q or %q, got %q", llm.ModeAuto, llm.ModeManual, c.Mode)
	}
	if c.Mode == string(llm.ModeAuto) && c.Provider == "" {
		return errors.New("provider is required in auto mode")
	}
	if c.MaxRetries < 1 || c.ValidationMaxRetries < 1 {
		return errors.New("retry budgets must be at least 1")
	}
	return nil
}

// Configuration converts the persisted settings into the per-run LLM
// configuration. apiKey is resolved separately by ResolveAPIKey.
func (c *Config) Configuration(apiKey string) llm.Configuration {
	return llm.DefaultConfiguration().
		WithProvider(llm.ProviderID(c.Provider)).
		WithMode(llm.Mode(c.Mode)).
		WithModel(c.Model).
		WithBaseURL(c.BaseURL).
		WithLanguage(c.Language).
		WithMaxRetries(c.MaxRetries).
		WithValidationMaxRetries(c.ValidationMaxRetries).
		WithAPIKey(apiKey)
}

// Store persists a Config as YAML at a fixed path.
type Store struct {
	path string
}

// NewStore returns a Store for path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns the Store at ConfigPath.
func DefaultStore() *Store {
	return NewStore(ConfigPath())
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Exists returns true if the config file exists on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Get reads the config file. A missing file yields the defaults.
func (s *Store) Get() (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	// Absent keys keep the zero value so NeedsMigration sees the stored
	// version rather than the default one.
	cfg.ConfigVersion = 0
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", s.path, err)
	}
	return cfg, nil
}

// Set writes cfg, creating parent directories as needed.
func (s *Store) Set(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
