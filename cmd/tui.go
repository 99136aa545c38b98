package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/discover/internal/models"
	"github.com/desertthunder/discover/internal/session"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/desertthunder/discover/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive artist search.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if err := shared.ApplyLogLevel(fileLogger, r.config.Log.Level); err != nil {
		return err
	}
	r.SetLogger(fileLogger)

	term := r.config.Search.DefaultTerm
	if t := cmd.String("term"); t != "" {
		term = t
	}

	ctx = session.NewContext(ctx, session.New())
	model, err := ui.NewModel(ctx, ui.ModelOpts{
		Engine:      r.lookupEngine(ctx),
		Logger:      fileLogger,
		DefaultTerm: term,
		DemoUser:    models.SessionUser{ID: r.config.Session.DemoID, Name: r.config.Session.DemoName},
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
