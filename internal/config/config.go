// Package config handles resolving configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Environment variable overrides. These take precedence over the config file
// so deployments can supply the listen address, database path, and signing
// secret without touching disk.
const (
	EnvAddress     = "BARRE_ADDRESS"
	EnvDBFilepath  = "BARRE_DB"
	EnvTokenSecret = "BARRE_TOKEN_SECRET"
)

// Config is the resolved process configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// DevMode enables verbose request logging and debug responses.
	DevMode bool `toml:"dev_mode"`
	// Address is the host:port the API server listens on.
	Address string `toml:"address"`
	// BaseURL is the server URL the CLI client talks to. Defaults to
	// "http://" + Address when empty.
	BaseURL string `toml:"base_url"`
	// DBFilepath locates the SQLite database file.
	DBFilepath string `toml:"db_filepath"`
	// CORSOrigins lists the browser origins allowed to call the API. Empty
	// allows any origin.
	CORSOrigins []string `toml:"cors_origins"`
	// TokenSecret signs session tokens. Required; every instance verifying
	// tokens must share it.
	TokenSecret string `toml:"token_secret"`
}

// Default returns a version of the config with all default values populated.
// Note that this configuration is _not_ valid, as the user must set
// token_secret.
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		Address:    "localhost:8080",
		DBFilepath: filepath.Join(xdg.DataHome, "barre", "db.sqlite"),
	}
}

// Load reads a TOML configuration file from path, merges it over the
// defaults and environment overrides, and validates it for completeness.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err = toml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	cfg.applyEnv()
	if err = cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddress); v != "" {
		c.Address = v
	}
	if v := os.Getenv(EnvDBFilepath); v != "" {
		c.DBFilepath = v
	}
	if v := os.Getenv(EnvTokenSecret); v != "" {
		c.TokenSecret = v
	}
}

func (c *Config) validate() error {
	if c.TokenSecret == "" {
		return fmt.Errorf("token_secret must be set (or %s exported)", EnvTokenSecret)
	}
	if c.Address == "" {
		return fmt.Errorf("address must be set")
	}
	return nil
}

// ClientBaseURL resolves the URL the CLI client should dial.
func (c *Config) ClientBaseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "http://" + c.Address
}
