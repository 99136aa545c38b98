package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/server"
	"github.com/desertthunder/discover/internal/shared"
	tu "github.com/desertthunder/discover/internal/testing"
)

// newTestRunner wires a runner to a mock service and an in-memory history database.
func newTestRunner(t *testing.T, svc *tu.MockArtistService) (*Runner, *bytes.Buffer) {
	t.Helper()

	db, err := shared.NewDatabase(shared.MemoryDatabase)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	output := &bytes.Buffer{}
	opts := RunnerOpts{
		Logger: shared.NewLogger(io.Discard),
		Output: output,
		DB:     db,
	}
	if svc != nil {
		opts.API = svc
	}
	return NewRunner(opts), output
}

func run(r *Runner, args ...string) error {
	return newApp(r).Run(context.Background(), append([]string{"discover"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := tu.NewMockArtistService()

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				API:        api,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		want := []string{"tui", "search", "history", "setup", "fixture"}
		if len(commands) != len(want) {
			t.Fatalf("expected %d commands, got %d", len(want), len(commands))
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
				continue
			}
			if cmd.Name != want[i] {
				t.Errorf("command %d: expected %s, got %s", i, want[i], cmd.Name)
			}
		}
	})
}

func TestBefore(t *testing.T) {
	t.Run("loads config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := "[api]\nbase_url = \"https://artists.example\"\n\n[search]\ndefault_term = \"Radiohead\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner, _ := newTestRunner(t, nil)
		if err := run(runner, "--config", path, "fixture", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if runner.config.API.BaseURL != "https://artists.example" {
			t.Errorf("expected base URL from file, got %s", runner.config.API.BaseURL)
		}
		if runner.config.Search.DefaultTerm != "Radiohead" {
			t.Errorf("expected default term from file, got %s", runner.config.Search.DefaultTerm)
		}
		if runner.config.Search.Workers != 3 {
			t.Errorf("expected keys missing from the file to keep defaults, got workers=%d", runner.config.Search.Workers)
		}
		if runner.configPath != path {
			t.Errorf("expected configPath %s, got %s", path, runner.configPath)
		}
	})

	t.Run("missing file keeps defaults", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)
		err := run(runner, "--config", filepath.Join(t.TempDir(), "absent.toml"), "fixture", "list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.config.API.BaseURL == "" {
			t.Error("expected default base URL")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[api\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner, _ := newTestRunner(t, nil)
		err := run(runner, "--config", path, "fixture", "list")
		if !errors.Is(err, shared.ErrConfiguration) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})

	t.Run("flag overrides", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)
		err := run(runner, "--api-url", "http://127.0.0.1:9999", "--log-level", "debug", "fixture", "list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if runner.config.API.BaseURL != "http://127.0.0.1:9999" {
			t.Errorf("expected base URL from flag, got %s", runner.config.API.BaseURL)
		}
	})

	t.Run("invalid base URL", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)
		err := run(runner, "--api-url", "ftp://artists.example", "fixture", "list")
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)
		err := run(runner, "--log-level", "loud", "fixture", "list")
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("single artist as text", func(t *testing.T) {
		svc := tu.NewMockArtistService(tu.Fixture("Linkin Park"))
		runner, output := newTestRunner(t, svc)

		if err := run(runner, "search", "  Linkin Park  "); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !strings.Contains(output.String(), "Artist: Linkin Park") {
			t.Errorf("expected artist in output, got:\n%s", output.String())
		}
		if calls := svc.Calls(); len(calls) != 1 || calls[0] != "Linkin Park" {
			t.Errorf("expected one trimmed request, got %v", calls)
		}

		count, err := runner.history.Count()
		if err != nil {
			t.Fatalf("failed to count history: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 history entry, got %d", count)
		}
	})

	t.Run("single artist failure", func(t *testing.T) {
		svc := tu.NewMockArtistService()
		svc.Err = shared.ErrNetwork
		runner, output := newTestRunner(t, svc)

		err := run(runner, "search", "Nobody")
		if !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
		if output.Len() != 0 {
			t.Errorf("expected no output, got %q", output.String())
		}

		entries, err := runner.history.List(0)
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(entries) != 1 || entries[0].Outcome != models.OutcomeNetwork {
			t.Errorf("expected one network failure in history, got %+v", entries)
		}
	})

	t.Run("several artists as JSON", func(t *testing.T) {
		svc := tu.NewMockArtistService(tu.Fixture("Linkin Park"), tu.Fixture("Radiohead"))
		runner, output := newTestRunner(t, svc)

		err := run(runner, "search", "--format", "json", "--rate", "100", "Linkin Park", "Missing", "Radiohead")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var artists []models.ArtistResult
		if err := json.Unmarshal(output.Bytes(), &artists); err != nil {
			t.Fatalf("expected JSON array, got %v:\n%s", err, output.String())
		}
		if len(artists) != 2 {
			t.Fatalf("expected 2 artists, got %d", len(artists))
		}
		if artists[0].Name != "Linkin Park" || artists[1].Name != "Radiohead" {
			t.Errorf("expected input order, got %s, %s", artists[0].Name, artists[1].Name)
		}
		if got := len(svc.Calls()); got != 3 {
			t.Errorf("expected 3 requests, got %d", got)
		}
	})

	t.Run("several artists all failing", func(t *testing.T) {
		runner, _ := newTestRunner(t, tu.NewMockArtistService())

		err := run(runner, "search", "--rate", "100", "One", "Two")
		if err == nil || !strings.Contains(err.Error(), "all 2 searches failed") {
			t.Errorf("expected all-failed error, got %v", err)
		}
	})

	t.Run("writes to file", func(t *testing.T) {
		svc := tu.NewMockArtistService(tu.Fixture("Radiohead"))
		runner, output := newTestRunner(t, svc)
		path := filepath.Join(t.TempDir(), "out", "radiohead.md")

		if err := run(runner, "search", "-f", "md", "-o", path, "Radiohead"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if content := tu.MustReadFile(t, path); !strings.HasPrefix(content, "# Radiohead") {
			t.Errorf("expected markdown heading, got:\n%s", content)
		}
		if output.Len() != 0 {
			t.Errorf("expected nothing on stdout, got %q", output.String())
		}
	})

	t.Run("downloads images with unique names", func(t *testing.T) {
		images := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(r.URL.Path))
		}))
		defer images.Close()

		first := &models.ArtistResult{Name: "坂本龍一", Images: []models.Image{{URL: images.URL + "/sakamoto"}}}
		second := &models.ArtistResult{Name: "宇多田ヒカル", Images: []models.Image{{URL: images.URL + "/utada"}}}
		runner, _ := newTestRunner(t, tu.NewMockArtistService(first, second))
		dir := t.TempDir()

		if err := run(runner, "search", "--rate", "100", "--image", dir, first.Name, second.Name); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := tu.MustReadFile(t, filepath.Join(dir, "坂本龍一.jpg")); got != "/sakamoto" {
			t.Errorf("expected first image to be kept, got %q", got)
		}
		if got := tu.MustReadFile(t, filepath.Join(dir, "宇多田ヒカル.jpg")); got != "/utada" {
			t.Errorf("expected second image, got %q", got)
		}
	})

	t.Run("argument errors", func(t *testing.T) {
		tt := []struct {
			name string
			args []string
			want error
		}{
			{name: "no names", args: []string{"search"}, want: shared.ErrMissingArgument},
			{name: "blank name", args: []string{"search", "   "}, want: shared.ErrMissingArgument},
			{name: "all blank", args: []string{"search", " ", ""}, want: shared.ErrMissingArgument},
			{name: "bad format", args: []string{"search", "-f", "yaml", "Radiohead"}, want: shared.ErrInvalidArgument},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				svc := tu.NewMockArtistService(tu.Fixture("Radiohead"))
				runner, _ := newTestRunner(t, svc)

				if err := run(runner, tc.args...); !errors.Is(err, tc.want) {
					t.Errorf("expected %v, got %v", tc.want, err)
				}
				if calls := svc.Calls(); len(calls) != 0 {
					t.Errorf("expected no requests, got %v", calls)
				}
			})
		}
	})

	t.Run("against fixture server", func(t *testing.T) {
		fixtures, err := server.NewFixtureHandler()
		if err != nil {
			t.Fatalf("failed to load fixtures: %v", err)
		}
		ts := httptest.NewServer(fixtures)
		defer ts.Close()

		runner, output := newTestRunner(t, nil)
		if err := run(runner, "--api-url", ts.URL, "search", "-f", "csv", "radiohead"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		lines := strings.Split(strings.TrimSpace(output.String()), "\n")
		if lines[0] != "Position,Track,URL,Artist" {
			t.Errorf("unexpected header %q", lines[0])
		}
		if len(lines) < 2 || !strings.HasSuffix(lines[1], ",Radiohead") {
			t.Errorf("expected Radiohead rows, got:\n%s", output.String())
		}
	})
}

func TestHistory(t *testing.T) {
	svc := tu.NewMockArtistService(tu.Fixture("Linkin Park"))
	runner, output := newTestRunner(t, svc)

	for _, term := range []string{"Linkin Park", "Nobody"} {
		run(runner, "search", term)
	}
	output.Reset()

	t.Run("list as text", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "history", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Search history (2)") {
			t.Errorf("expected header with count, got:\n%s", result)
		}
		if strings.Index(result, "Nobody") > strings.Index(result, "Linkin Park") {
			t.Errorf("expected newest first, got:\n%s", result)
		}
	})

	t.Run("list as JSON with limit", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "history", "list", "-n", "1", "-f", "json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var entries []models.HistoryEntry
		if err := json.Unmarshal(output.Bytes(), &entries); err != nil {
			t.Fatalf("expected JSON, got %v:\n%s", err, output.String())
		}
		if len(entries) != 1 || entries[0].Term != "Nobody" {
			t.Errorf("expected latest entry only, got %+v", entries)
		}
	})

	t.Run("clear", func(t *testing.T) {
		output.Reset()
		if err := run(runner, "history", "clear"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "Deleted 2 searches") {
			t.Errorf("unexpected output %q", output.String())
		}

		output.Reset()
		if err := run(runner, "history", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No searches yet.") {
			t.Errorf("expected empty history, got:\n%s", output.String())
		}
	})
}

func TestHistoryInMemoryWarning(t *testing.T) {
	tt := []struct {
		name string
		args []string
	}{
		{name: "list", args: []string{"history", "list"}},
		{name: "clear", args: []string{"history", "clear"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			runner, _ := newTestRunner(t, nil)
			var logs bytes.Buffer
			runner.SetLogger(shared.NewLogger(&logs))
			t.Setenv("DISCOVER_DB_PATH", shared.MemoryDatabase)

			if err := run(runner, tc.args...); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(logs.String(), "history database is in memory") {
				t.Errorf("expected in-memory warning, got %q", logs.String())
			}
			if !strings.Contains(logs.String(), "DISCOVER_DB_PATH") {
				t.Errorf("expected configuration hint, got %q", logs.String())
			}
		})
	}

	t.Run("file database is quiet", func(t *testing.T) {
		runner, _ := newTestRunner(t, nil)
		var logs bytes.Buffer
		runner.SetLogger(shared.NewLogger(&logs))
		t.Setenv("DISCOVER_DB_PATH", filepath.Join(t.TempDir(), "history.db"))

		if err := run(runner, "history", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if strings.Contains(logs.String(), "in memory") {
			t.Errorf("unexpected warning %q", logs.String())
		}
	})
}

func TestSetup(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		runner, output := newTestRunner(t, nil)

		if err := run(runner, "--config", path, "setup", "config"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		tu.AssertFileExists(t, path)
		if !strings.Contains(output.String(), path) {
			t.Errorf("expected path in output, got %q", output.String())
		}

		loaded, err := shared.LoadConfig(path)
		if err != nil {
			t.Fatalf("generated config does not load: %v", err)
		}
		if loaded.Search.DefaultTerm != models.DefaultSearchTerm {
			t.Errorf("expected default term, got %q", loaded.Search.DefaultTerm)
		}

		runner, _ = newTestRunner(t, nil)
		if err := run(runner, "--config", path, "setup", "config"); err == nil {
			t.Error("expected error when config already exists")
		}
	})

	t.Run("database", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		dbPath := filepath.Join(dir, "history.db")
		content := "[database]\npath = \"" + filepath.ToSlash(dbPath) + "\"\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		t.Cleanup(func() { runner.Close() })

		if err := run(runner, "--config", path, "setup", "database"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, dbPath)

		entry := models.NewHistoryEntry("Radiohead", models.OutcomeOK, "Radiohead")
		if err := runner.history.Create(&entry); err != nil {
			t.Errorf("expected history table after migrations, got %v", err)
		}

		rollback := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		if err := run(rollback, "--config", path, "setup", "database", "--rollback"); err != nil {
			t.Fatalf("expected rollback to succeed, got %v", err)
		}
	})
}

func TestFixtureList(t *testing.T) {
	runner, output := newTestRunner(t, nil)

	if err := run(runner, "fixture", "list"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	names := strings.Split(strings.TrimSpace(output.String()), "\n")
	if len(names) != 3 {
		t.Fatalf("expected 3 fixture artists, got %v", names)
	}
	if names[0] != "linkin park" {
		t.Errorf("expected sorted names, got %v", names)
	}
}
