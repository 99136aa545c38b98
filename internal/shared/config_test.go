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

		if config.API.BaseURL != "http://localhost:5000" {
			t.Errorf("expected base URL http://localhost:5000, got %s", config.API.BaseURL)
		}

		if config.Search.DefaultTerm != "Linkin Park" {
			t.Errorf("expected default term Linkin Park, got %s", config.Search.DefaultTerm)
		}

		if config.Session.DemoID != "6969" || config.Session.DemoName != "Dekay" {
			t.Errorf("expected demo identity 6969/Dekay, got %s/%s", config.Session.DemoID, config.Session.DemoName)
		}

		if config.Database.Path != MemoryDatabase {
			t.Errorf("expected database path %s, got %s", MemoryDatabase, config.Database.Path)
		}

		if config.Fixture.Addr() != "127.0.0.1:5000" {
			t.Errorf("expected fixture addr 127.0.0.1:5000, got %s", config.Fixture.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.API.BaseURL != DefaultConfig().API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[api]
base_url = "https://music.example.com"

[search]
default_term = "Radiohead"

[database]
path = "/custom/history.db"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "https://music.example.com" {
			t.Errorf("expected base URL https://music.example.com, got %s", config.API.BaseURL)
		}
		if config.Search.DefaultTerm != "Radiohead" {
			t.Errorf("expected default term Radiohead, got %s", config.Search.DefaultTerm)
		}
		if config.Database.Path != "/custom/history.db" {
			t.Errorf("expected database path /custom/history.db, got %s", config.Database.Path)
		}
		if config.Session.DemoName != "Dekay" {
			t.Errorf("expected missing keys to keep defaults, got demo name %q", config.Session.DemoName)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadEnv", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("DISCOVER_API_URL", "https://env.example.com")
		t.Setenv("DISCOVER_DEFAULT_TERM", "Thom Yorke")

		config := DefaultConfig()
		if err := LoadEnv(config); err != nil {
			t.Fatalf("failed to load env: %v", err)
		}

		if config.API.BaseURL != "https://env.example.com" {
			t.Errorf("expected env base URL, got %s", config.API.BaseURL)
		}
		if config.Search.DefaultTerm != "Thom Yorke" {
			t.Errorf("expected env default term, got %s", config.Search.DefaultTerm)
		}
		if config.Log.Level != "info" {
			t.Errorf("expected unset variables to keep file values, got log level %q", config.Log.Level)
		}
	})

	t.Run("LoadEnv Reads Dotenv", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DISCOVER_LOG_LEVEL=debug\n"), 0644); err != nil {
			t.Fatalf("failed to write .env: %v", err)
		}
		t.Cleanup(func() { os.Unsetenv("DISCOVER_LOG_LEVEL") })

		config := DefaultConfig()
		if err := LoadEnv(config); err != nil {
			t.Fatalf("failed to load env: %v", err)
		}
		if config.Log.Level != "debug" {
			t.Errorf("expected log level from .env, got %q", config.Log.Level)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tt := []struct {
			name    string
			baseURL string
			wantErr bool
		}{
			{name: "http url", baseURL: "http://localhost:5000", wantErr: false},
			{name: "https url", baseURL: "https://api.example.com/v1", wantErr: false},
			{name: "empty", baseURL: "", wantErr: true},
			{name: "missing scheme", baseURL: "localhost:5000", wantErr: true},
			{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				config := DefaultConfig()
				config.API.BaseURL = tc.baseURL

				err := config.Validate()
				if (err != nil) != tc.wantErr {
					t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
				}
				if err != nil && !errors.Is(err, ErrConfiguration) {
					t.Errorf("expected ErrConfiguration, got %v", err)
				}
			})
		}
	})
}
