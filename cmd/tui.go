package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/desertthunder/jbx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for the jukebox queue.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/jbx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	svc, sctx, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	participantID := func() string { return "" }
	if sctx != nil {
		db, store, err := r.openStore()
		if err != nil {
			fileLogger.Warn("participant store unavailable, running anonymously", "error", err)
		} else {
			defer db.Close()
			membership := session.NewMembership(svc, store, fileLogger)
			if participant, _, err := membership.Ensure(ctx, sctx.ID); err == nil {
				id := participant.ID
				participantID = func() string { return id }
			} else {
				fileLogger.Warn("could not resolve participant, running anonymously", "error", err)
			}
		}
	}

	admin := session.NewAdminState(svc, fileLogger)
	if err := admin.Init(ctx); err != nil {
		fileLogger.Warn("starting with unknown admin state", "error", err)
	}

	model := ui.NewModel(ctx, svc, admin, participantID, r.config, fileLogger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
