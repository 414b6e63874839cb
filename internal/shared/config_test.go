package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./reel.db" {
			t.Errorf("expected database path ./reel.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8000 {
			t.Errorf("expected server port 8000, got %d", config.Server.Port)
		}

		if config.Catalog.BaseURL != "https://api.themoviedb.org/3" {
			t.Errorf("expected TMDB base URL, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.TokenEnv != "REEL_TMDB_TOKEN" {
			t.Errorf("expected token env REEL_TMDB_TOKEN, got %s", config.Catalog.TokenEnv)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
base_url = "https://example.com/api"
image_base_url = "https://example.com/img"
token_env = "TEST_CATALOG_TOKEN"
timeout_seconds = 5
requests_per_sec = 2

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 8080
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		t.Setenv("TEST_CATALOG_TOKEN", "token-from-env")

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected custom database path, got %s", config.Database.Path)
		}

		if config.Server.Addr() != "0.0.0.0:8080" {
			t.Errorf("expected addr 0.0.0.0:8080, got %s", config.Server.Addr())
		}

		if config.Catalog.AccessToken != "token-from-env" {
			t.Errorf("expected access token from environment, got %q", config.Catalog.AccessToken)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		t.Run("Missing Token", func(t *testing.T) {
			t.Setenv("REEL_TMDB_TOKEN", "")

			config := DefaultConfig()
			err := config.Validate()
			if !errors.Is(err, ErrMissingCredentials) {
				t.Errorf("expected ErrMissingCredentials, got %v", err)
			}
		})

		t.Run("Token Present", func(t *testing.T) {
			t.Setenv("REEL_TMDB_TOKEN", "secret")

			config := DefaultConfig()
			if err := config.Validate(); err != nil {
				t.Errorf("expected valid config, got %v", err)
			}
		})

		t.Run("Missing Catalog URLs", func(t *testing.T) {
			t.Setenv("REEL_TMDB_TOKEN", "secret")

			config := DefaultConfig()
			config.Catalog.BaseURL = ""
			if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})
}
