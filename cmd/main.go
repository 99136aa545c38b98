package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})
	defer runner.Close()

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrConfiguration) {
			logger.Error("configuration error", "error", err)
			runner.Close()
			os.Exit(2)
		}
		runner.Close()
		logger.Fatalf("application error: %v", err)
	}
}

// newApp builds the root command. Running it without a subcommand launches the TUI.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "discover",
		Usage:   "Search artists and browse similar ones from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Base URL of the artist search API (overrides config and DISCOVER_API_URL)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
			},
		},
		Before:   r.Before,
		Action:   r.TUI,
		Commands: r.register(),
	}
}
