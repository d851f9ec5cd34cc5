package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Sync     SyncConfig     `toml:"sync"`
	Session  SessionConfig  `toml:"session"`
	Database DatabaseConfig `toml:"database"`
}

// ServerConfig contains jukebox server connection settings.
type ServerConfig struct {
	BaseURL          string  `toml:"base_url"`
	RequestTimeoutMS int     `toml:"request_timeout_ms"`
	RateLimit        float64 `toml:"rate_limit"`
}

// SyncConfig contains polling and mutation-coalescing timings.
type SyncConfig struct {
	PollIntervalMS int `toml:"poll_interval_ms"`
	DebounceMS     int `toml:"debounce_ms"`
	RateFloorMS    int `toml:"rate_floor_ms"`
}

// SessionConfig contains the default session selection.
type SessionConfig struct {
	Default string `toml:"default"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PollInterval returns the queue poll interval as a [time.Duration].
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Sync.PollIntervalMS) * time.Millisecond
}

// Debounce returns the enqueue debounce window as a [time.Duration].
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Sync.DebounceMS) * time.Millisecond
}

// RateFloor returns the minimum spacing between enqueue sends as a [time.Duration].
func (c *Config) RateFloor() time.Duration {
	return time.Duration(c.Sync.RateFloorMS) * time.Millisecond
}

// RequestTimeout returns the per-request timeout as a [time.Duration].
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutMS) * time.Millisecond
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
