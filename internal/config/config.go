// Package config loads intervue settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/intervue/internal/llm"
)

// Storage backends.
const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"

	StateMemory = "memory"
	StateBolt   = "bolt"
)

// Config is the top-level structure of config.yaml.
type Config struct {
	LLM   llm.Config  `yaml:"llm"`
	Store StoreConfig `yaml:"store"`
	State StateConfig `yaml:"state"`
}

// StoreConfig selects where sessions and LLM events are persisted.
type StoreConfig struct {
	Backend       string `yaml:"backend"` // "sqlite" | "mongo"
	Path          string `yaml:"path"`    // SQLite file; empty uses the data dir
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
}

// StateConfig selects where live session decision state is kept.
type StateConfig struct {
	Backend string `yaml:"backend"` // "memory" | "bolt"
	Path    string `yaml:"path"`    // bbolt file; empty uses the data dir
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LLM: llm.DefaultConfig(),
		Store: StoreConfig{
			Backend:       StoreSQLite,
			MongoURI:      "mongodb://localhost:27017",
			MongoDatabase: "intervue",
		},
		State: StateConfig{
			Backend: StateBolt,
		},
	}
}

// DefaultPath resolves the config file path:
// $XDG_CONFIG_HOME/intervue/config.yaml, else ~/.config/intervue/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "intervue", "config.yaml"), nil
}

// Load builds the effective configuration: defaults, then the YAML file at
// path (a missing file is fine), then INTERVUE_* environment variables.
// When the selected provider still has no key, the standard provider key
// variables are probed.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("reading config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing config %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)

	if !cfg.LLM.HasKey() {
		if found, ok := llm.DiscoverConfig(cfg.LLM); ok {
			cfg.LLM = found
		}
	}

	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) {
	llm.ApplyEnv(&cfg.LLM)

	if v := os.Getenv("INTERVUE_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("INTERVUE_STORE"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("INTERVUE_MONGO_URI"); v != "" {
		cfg.Store.MongoURI = v
	}
	if v := os.Getenv("INTERVUE_MONGO_DATABASE"); v != "" {
		cfg.Store.MongoDatabase = v
	}
	if v := os.Getenv("INTERVUE_STATE"); v != "" {
		cfg.State.Backend = v
	}
	if v := os.Getenv("INTERVUE_STATE_PATH"); v != "" {
		cfg.State.Path = v
	}
}

// Validate checks the storage settings. LLM settings are validated when the
// provider is built, so commands that never call the LLM work without a key.
func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreSQLite:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("store.mongo_uri is required for the mongo backend")
		}
		if c.Store.MongoDatabase == "" {
			return fmt.Errorf("store.mongo_database is required for the mongo backend")
		}
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}

	switch c.State.Backend {
	case StateMemory, StateBolt:
	default:
		return fmt.Errorf("unknown state backend: %q", c.State.Backend)
	}
	return nil
}

// Write saves cfg as YAML at path, creating the directory if needed.
func Write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
