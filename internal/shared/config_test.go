package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.BaseURL != "http://localhost:5000" {
			t.Errorf("unexpected base url %q", config.Server.BaseURL)
		}
		if config.PollInterval() != 5*time.Second {
			t.Errorf("expected 5s poll interval, got %v", config.PollInterval())
		}
		if config.Debounce() != 300*time.Millisecond {
			t.Errorf("expected 300ms debounce, got %v", config.Debounce())
		}
		if config.RateFloor() != 300*time.Millisecond {
			t.Errorf("expected 300ms rate floor, got %v", config.RateFloor())
		}
		if config.RequestTimeout() != 10*time.Second {
			t.Errorf("expected 10s request timeout, got %v", config.RequestTimeout())
		}
		if config.Database.Path == "" {
			t.Error("expected a default database path")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("parses a valid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[server]
base_url = "http://jukebox.local:8080"
request_timeout_ms = 2000
rate_limit = 5.0

[sync]
poll_interval_ms = 1000
debounce_ms = 100
rate_floor_ms = 200

[session]
default = "ab12cd34"

[database]
path = "test.db"
max_open_conns = 3
max_idle_conns = 1
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if config.Server.BaseURL != "http://jukebox.local:8080" {
				t.Errorf("unexpected base url %q", config.Server.BaseURL)
			}
			if config.PollInterval() != time.Second {
				t.Errorf("expected 1s poll interval, got %v", config.PollInterval())
			}
			if config.Session.Default != "ab12cd34" {
				t.Errorf("unexpected default session %q", config.Session.Default)
			}
			if config.Database.MaxOpenConns != 3 {
				t.Errorf("unexpected max open conns %d", config.Database.MaxOpenConns)
			}
		})

		t.Run("missing file is an error", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("invalid toml is an error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			os.WriteFile(path, []byte("not [valid toml"), 0644)
			if _, err := LoadConfig(path); err == nil {
				t.Error("expected parse error")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("writes the template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := CreateConfigFile(path); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("created file did not parse: %v", err)
			}
			if config.Server.BaseURL != DefaultConfig().Server.BaseURL {
				t.Error("created config should match embedded defaults")
			}
		})

		t.Run("refuses to overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			os.WriteFile(path, []byte("existing"), 0644)
			if err := CreateConfigFile(path); err == nil {
				t.Error("expected error when file exists")
			}
		})
	})
}
