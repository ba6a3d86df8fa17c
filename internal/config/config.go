package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/shoplist/internal/app"
	"github.com/idilsaglam/shoplist/internal/store"
)

// FileName is the config file looked up in the user config dir.
const FileName = "shoplist.yml"

// EnvVar points at a config file, overriding the default location.
const EnvVar = "SHOPLIST_CONFIG"

// Storage backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config is the shoplist.yml layout.
type Config struct {
	Storage         StorageConfig `yaml:"storage"`
	DefaultListName string        `yaml:"default_list_name,omitempty"`
	NewListName     string        `yaml:"new_list_name,omitempty"`
	Theme           string        `yaml:"theme,omitempty"`     // classic, neon or mono
	LogLevel        string        `yaml:"log_level,omitempty"` // debug, info, warn, error
}

// StorageConfig selects where the state blob lives.
type StorageConfig struct {
	Backend string `yaml:"backend,omitempty"` // file or memory
	Dir     string `yaml:"dir,omitempty"`     // file backend only
	Key     string `yaml:"key,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendFile
	}
	if c.Storage.Key == "" {
		c.Storage.Key = store.DefaultKey
	}
	if c.Storage.Dir == "" && c.Storage.Backend == BackendFile {
		c.Storage.Dir = DefaultDataDir()
	}
	if c.DefaultListName == "" {
		c.DefaultListName = store.DefaultListName
	}
	if c.NewListName == "" {
		c.NewListName = app.NewListName
	}
	if c.Theme == "" {
		c.Theme = "classic"
	}
	if c.LogLevel == "" {
		c.LogLevel = "warn"
	}
}

// Validate rejects values the app cannot use.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unsupported backend %q (expected: file or memory)", c.Storage.Backend)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("theme: unknown theme %q (expected: classic, neon or mono)", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	return nil
}

// DefaultDataDir is <UserConfigDir>/shoplist, or the working directory if that is unknown.
func DefaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "shoplist")
}

// DefaultPath resolves the config path: $SHOPLIST_CONFIG, then the user config dir.
func DefaultPath() string {
	if p := os.Getenv(EnvVar); p != "" {
		return p
	}
	return filepath.Join(DefaultDataDir(), FileName)
}

// Load reads and validates path. A missing file yields the defaults;
// required says whether a missing file is an error instead.
func Load(path string, required bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}
