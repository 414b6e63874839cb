package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// The catalog access token is deliberately not part of the file: it is read
// from the environment variable named by [CatalogConfig.TokenEnv] so the
// credential never lands on disk next to the database.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
}

// CatalogConfig contains settings for the external movie metadata API.
type CatalogConfig struct {
	BaseURL        string `toml:"base_url"`
	ImageBaseURL   string `toml:"image_base_url"`
	TokenEnv       string `toml:"token_env"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	RequestsPerSec int    `toml:"requests_per_sec"`

	// AccessToken is populated from the environment by LoadConfig, never from TOML.
	AccessToken string `toml:"-"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns the host:port string the HTTP server binds to.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path,
// then resolves the catalog access token from the environment.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	config.resolveToken()
	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	config.resolveToken()
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

// Validate checks that the configuration can actually run the service.
//
// Called at process start so a missing credential fails fast instead of
// surfacing on the first catalog search.
func (c *Config) Validate() error {
	if c.Catalog.AccessToken == "" {
		return fmt.Errorf("%w: set %s in the environment", ErrMissingCredentials, c.Catalog.TokenEnv)
	}
	if c.Catalog.BaseURL == "" || c.Catalog.ImageBaseURL == "" {
		return fmt.Errorf("%w: catalog base_url and image_base_url are required", ErrInvalidConfig)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) resolveToken() {
	if c.Catalog.TokenEnv == "" {
		c.Catalog.TokenEnv = "REEL_TMDB_TOKEN"
	}
	c.Catalog.AccessToken = os.Getenv(c.Catalog.TokenEnv)
}
