package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

// HistoryList prints recorded searches, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	limit := int(cmd.Int("limit"))

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	r.warnVolatileHistory()
	repo, err := r.historyRepository()
	if err != nil {
		return err
	}

	entries, err := repo.List(limit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}
	r.logger.Debug("listed history", "entries", len(entries), "limit", limit)

	data, err := formatter.History(entries, format)
	if err != nil {
		return fmt.Errorf("failed to format history: %w", err)
	}

	if format == formatter.Text || format == formatter.Markdown {
		r.writePlainHeader(fmt.Sprintf("Search history (%d)", len(entries)))
	}
	return r.writePlain("%s", data)
}

// HistoryClear deletes every recorded search.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	r.warnVolatileHistory()
	repo, err := r.historyRepository()
	if err != nil {
		return err
	}

	n, err := repo.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	r.logger.Info("history cleared", "deleted", n)
	return r.writePlain("✓ Deleted %d searches\n", n)
}

// warnVolatileHistory notes that an in-memory store only holds searches made by this process.
func (r *Runner) warnVolatileHistory() {
	if path := r.config.Database.Path; path == shared.MemoryDatabase {
		r.logger.Warn("history database is in memory; only searches from this process are kept",
			"path", path, "hint", "set database.path or DISCOVER_DB_PATH to a file")
	}
}
