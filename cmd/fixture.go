package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/discover/internal/server"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

// FixtureServe runs the fixture API until interrupted.
func (r *Runner) FixtureServe(ctx context.Context, cmd *cli.Command) error {
	fc := r.config.Fixture
	if h := cmd.String("host"); h != "" {
		fc.Host = h
	}
	if cmd.IsSet("port") {
		fc.Port = int(cmd.Int("port"))
	}

	fixtures, err := server.NewFixtureHandler()
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.NewFixtureServer(fc.Addr(), shared.WithLogger(r.logger, "component", "fixture"), fixtures)
	r.writePlain("Serving %d fixture artists at http://%s/search?name=\n", len(fixtures.Names()), fc.Addr())

	return srv.ListenAndServe(ctx)
}

// FixtureList prints the artist names the fixture server answers for.
func (r *Runner) FixtureList(ctx context.Context, cmd *cli.Command) error {
	fixtures, err := server.NewFixtureHandler()
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	for _, name := range fixtures.Names() {
		if err := r.writePlain("%s\n", name); err != nil {
			return err
		}
	}
	return nil
}
