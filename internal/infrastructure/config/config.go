package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all host configuration.
type Config struct {
	Host     HostConfig     `yaml:"host"`
	Keyboard KeyboardConfig `yaml:"keyboard"`
	API      APIConfig      `yaml:"api"`
	Logging  LogConfig      `yaml:"logging"`
}

// HostConfig identifies the host process and its extension root.
type HostConfig struct {
	// Name is the executable name the host reports for its own process ID.
	Name string `envconfig:"SERIN_HOST_NAME" default:"serin" yaml:"name"`
	// ExtensionsDir is the root directory for per-application key-map files.
	ExtensionsDir string `envconfig:"SERIN_EXTENSIONS_DIR" default:"appmodules" yaml:"extensions_dir"`
	// RefreshInterval is the registry eviction poll interval in seconds.
	RefreshInterval int `envconfig:"SERIN_REFRESH_INTERVAL" default:"2" yaml:"refresh_interval"`
}

// KeyboardConfig selects the active key-map layout.
type KeyboardConfig struct {
	// Layout is the keyboard binding profile, at minimum "desktop" or "laptop".
	Layout string `envconfig:"SERIN_KEYBOARD_LAYOUT" default:"desktop" yaml:"layout"`
}

// APIConfig holds the introspection HTTP server configuration.
type APIConfig struct {
	Enabled bool   `envconfig:"SERIN_API_ENABLED" default:"true" yaml:"enabled"`
	Addr    string `envconfig:"SERIN_API_ADDR" default:"127.0.0.1:8490" yaml:"addr"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"SERIN_LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"SERIN_LOG_DEV" default:"false" yaml:"development"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadFile loads configuration from a YAML file layered over the defaults.
// A missing file is not an error; environment loading applies instead.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Load()
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Host: HostConfig{
			Name:            "serin",
			ExtensionsDir:   "appmodules",
			RefreshInterval: 2,
		},
		Keyboard: KeyboardConfig{
			Layout: "desktop",
		},
		API: APIConfig{
			Enabled: true,
			Addr:    "127.0.0.1:8490",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
