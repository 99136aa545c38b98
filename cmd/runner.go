package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/discover/internal/repositories"
	"github.com/desertthunder/discover/internal/services"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/desertthunder/discover/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The API client, history database and lookup engine are built on first use so commands that
// never search (setup, fixture) do not open a database.
type Runner struct {
	config     *shared.Config
	configPath string
	api        services.ArtistService
	httpClient *http.Client
	db         *sql.DB
	ownsDB     bool
	history    *repositories.HistoryRepository
	engine     *tasks.LookupEngine
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        services.ArtistService
	HTTPClient *http.Client
	DB         *sql.DB
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		httpClient: opts.HTTPClient,
		db:         opts.DB,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		tuiCommand, searchCommand, historyCommand, setupCommand, fixtureCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Before loads configuration for every command: the TOML file, then .env and the environment, then flags.
//
// A missing file falls back to the built-in defaults so `setup config` can create it.
func (r *Runner) Before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	r.configPath = path

	config, err := shared.LoadConfig(path)
	switch {
	case err == nil:
		r.config = config
		r.logger.Debug("loaded config", "path", path)
	case errors.Is(err, fs.ErrNotExist) && cmd.IsSet("config"):
		r.logger.Warn("config file not found, using defaults", "path", path)
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("config file not found, using defaults", "path", path)
	default:
		return ctx, fmt.Errorf("%w: %v", shared.ErrInvalidConfig, err)
	}

	if err := shared.LoadEnv(r.config); err != nil {
		return ctx, err
	}

	if u := cmd.String("api-url"); u != "" {
		r.config.API.BaseURL = u
	}
	if lvl := cmd.String("log-level"); lvl != "" {
		r.config.Log.Level = lvl
	}

	if err := r.config.Validate(); err != nil {
		return ctx, err
	}
	if err := shared.ApplyLogLevel(r.logger, r.config.Log.Level); err != nil {
		return ctx, err
	}

	return ctx, nil
}

// SetLogger replaces the logger used by commands and by any engine built afterwards.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// artistService returns the injected service or builds an [services.APIService] from config.
func (r *Runner) artistService(ctx context.Context) services.ArtistService {
	if r.api != nil {
		return r.api
	}

	client := r.httpClient
	if r.config.API.Token != "" {
		client = services.NewAuthorizedClient(ctx, r.config.API.Token)
	}
	r.api = services.NewAPIService(r.config.API.BaseURL, client)
	return r.api
}

// historyRepository opens the history database and applies migrations.
func (r *Runner) historyRepository() (*repositories.HistoryRepository, error) {
	if r.history != nil {
		return r.history, nil
	}

	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open history database: %w", err)
		}
		if r.config.Database.Path != shared.MemoryDatabase {
			shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		}
		r.db = db
		r.ownsDB = true
	}

	if err := shared.RunMigrations(r.db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.history = repositories.NewHistoryRepository(r.db)
	return r.history, nil
}

// lookupEngine builds the engine on first use. History problems are logged and searching continues without it.
func (r *Runner) lookupEngine(ctx context.Context) *tasks.LookupEngine {
	if r.engine != nil {
		return r.engine
	}

	var recorder tasks.Recorder
	if repo, err := r.historyRepository(); err != nil {
		r.logger.Warn("search history disabled", "error", err)
	} else {
		recorder = repositories.NewHistoryRecorder(repo)
	}

	r.engine = tasks.NewLookupEngine(r.artistService(ctx), recorder, r.logger)
	return r.engine
}

// Close releases the history database if the runner opened it.
func (r *Runner) Close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	r.history = nil
	r.engine = nil
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
