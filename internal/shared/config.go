package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file and overlaid with environment variables.
type Config struct {
	API      APIConfig      `toml:"api"`
	Search   SearchConfig   `toml:"search"`
	Session  SessionConfig  `toml:"session"`
	Database DatabaseConfig `toml:"database"`
	Log      LogConfig      `toml:"log"`
	Fixture  FixtureConfig  `toml:"fixture"`
}

// APIConfig points at the remote artist search API.
type APIConfig struct {
	BaseURL string `toml:"base_url" env:"DISCOVER_API_URL"`
	Token   string `toml:"token" env:"DISCOVER_API_TOKEN"`
}

// SearchConfig contains search defaults and bulk lookup throttling.
type SearchConfig struct {
	DefaultTerm string  `toml:"default_term" env:"DISCOVER_DEFAULT_TERM"`
	RateLimit   float64 `toml:"rate_limit"`
	Workers     int     `toml:"workers"`
}

// SessionConfig is the identity used by the login affordance.
type SessionConfig struct {
	DemoID   string `toml:"demo_id"`
	DemoName string `toml:"demo_name"`
}

// DatabaseConfig contains search history database settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"DISCOVER_DB_PATH"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LogConfig controls log verbosity and where the TUI writes its log.
type LogConfig struct {
	Level string `toml:"level" env:"DISCOVER_LOG_LEVEL"`
	File  string `toml:"file" env:"DISCOVER_LOG_FILE"`
}

// FixtureConfig contains settings for the local fixture API server.
type FixtureConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// Addr returns host:port for the fixture server.
func (f FixtureConfig) Addr() string {
	return fmt.Sprintf("%s:%d", f.Host, f.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// LoadEnv overlays environment variables onto config.
//
// A .env file in the working directory is loaded first when present. Only variables that are set replace file values.
func LoadEnv(config *Config) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Validate checks that the search API base URL is an absolute http(s) URL.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalidConfig)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: api.base_url: %v", ErrInvalidConfig, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", ErrInvalidConfig, c.API.BaseURL)
	}
	return nil
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
