package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/desertthunder/discover/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Search looks up every NAME argument and prints the artists in the requested format.
//
// A single name is one request. Several names run through [tasks.LookupEngine.BulkLookup]; artists that failed
// are logged and left out of the output, and the command fails only when none succeeded.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	terms := cmd.Args().Slice()
	if len(terms) == 0 {
		return fmt.Errorf("%w: at least one artist name is required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	engine := r.lookupEngine(ctx)

	var artists []*models.ArtistResult
	if len(terms) == 1 {
		q, ok := models.NewSearchQuery(terms[0])
		if !ok {
			return fmt.Errorf("%w: artist name is blank", shared.ErrMissingArgument)
		}

		res := engine.Lookup(ctx, q)
		if res.Error != nil {
			return fmt.Errorf("search for %q failed: %w", q, res.Error)
		}
		artists = append(artists, res.Artist)
	} else {
		opts := tasks.BulkLookupOpts{
			Workers:   r.config.Search.Workers,
			RateLimit: r.config.Search.RateLimit,
		}
		if cmd.IsSet("workers") {
			opts.Workers = int(cmd.Int("workers"))
		}
		if cmd.IsSet("rate") {
			opts.RateLimit = cmd.Float("rate")
		}

		if artists, err = r.bulkSearch(ctx, engine, terms, opts); err != nil {
			return err
		}
	}

	data, err := formatter.Artists(artists, format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	if err := formatter.WriteFile(r.output, cmd.String("output"), data); err != nil {
		return err
	}
	if path := cmd.String("output"); path != "" && path != "-" {
		r.logger.Info("results saved", "path", path, "artists", len(artists))
	}

	if dir := cmd.String("image"); dir != "" {
		r.saveImages(artists, dir)
	}

	return nil
}

func (r *Runner) bulkSearch(
	ctx context.Context,
	engine *tasks.LookupEngine,
	terms []string,
	opts tasks.BulkLookupOpts,
) ([]*models.ArtistResult, error) {
	progress := make(chan tasks.ProgressUpdate, 10)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := engine.BulkLookup(ctx, progress, terms, opts)
	close(progress)
	<-done

	if err != nil && result == nil {
		return nil, err
	}

	var artists []*models.ArtistResult
	for _, res := range result.Results {
		if res.Error != nil {
			r.logger.Warn("search failed", "term", res.Query, "outcome", res.Outcome(), "error", res.Error)
			continue
		}
		artists = append(artists, res.Artist)
	}

	r.logger.Info("bulk search complete",
		"successful", result.Successful,
		"failed", result.Failed,
		"skipped", result.Skipped,
	)

	if err != nil {
		return nil, err
	}
	if len(artists) == 0 {
		return nil, fmt.Errorf("all %d searches failed: %w", result.Failed, result.Results[0].Error)
	}
	return artists, nil
}

// saveImages downloads each artist's preferred image. Failures are logged and do not fail the command.
func (r *Runner) saveImages(artists []*models.ArtistResult, dir string) {
	saver := formatter.NewImageSaver(r.httpClient, dir)
	for _, a := range artists {
		path, err := saver.Save(a)
		switch {
		case errors.Is(err, shared.ErrInvalidInput):
			r.logger.Warn("artist has no image", "artist", a.Name)
		case err != nil:
			r.logger.Warn("failed to save image", "artist", a.Name, "error", err)
		default:
			r.logger.Info("image saved", "artist", a.Name, "path", path)
		}
	}
}
