package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// SessionCreate creates a new shareable session.
func (r *Runner) SessionCreate(ctx context.Context, cmd *cli.Command) error {
	handle, err := r.client.CreateSession(ctx)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.writePlain("Session created: %s\n", handle.SessionID)
	r.writePlain("Share link: %s%s\n", r.config.Server.BaseURL, handle.RedirectURL)
	r.writePlain("Set [session].default = %q in config.toml to use it by default\n", handle.SessionID)
	return nil
}

// SessionJoin joins a session by code or shareable link, persisting the
// assigned participant identity for later commands.
func (r *Runner) SessionJoin(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("code")
	if raw == "" {
		return fmt.Errorf("%w: session code or link", shared.ErrMissingArgument)
	}

	id := session.DetectSessionID(raw)
	if id == "" {
		return fmt.Errorf("%w: %q does not reference a session", shared.ErrInvalidArgument, raw)
	}

	sctx, err := session.Establish(ctx, r.client, id, r.logger)
	if err != nil {
		return err
	}
	svc := r.client.WithSession(ctx, sctx.ID, sctx.Token)

	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	membership := session.NewMembership(svc, store, r.logger)
	participant, joinedNow, err := membership.Ensure(ctx, sctx.ID)
	if err != nil {
		return err
	}

	if joinedNow {
		r.writePlain("Joined session %s as %s\n", sctx.ID, participant.Name)
	} else {
		r.writePlain("Already joined session %s as %s\n", sctx.ID, participant.Name)
	}

	if name := cmd.String("name"); name != "" && name != participant.Name {
		renamed, err := membership.Rename(ctx, sctx.ID, name)
		if err != nil {
			return err
		}
		r.writePlain("Renamed to %s\n", renamed.Name)
	}
	return nil
}

// SessionRename changes the stored display name for a session.
func (r *Runner) SessionRename(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: display name", shared.ErrMissingArgument)
	}

	svc, sctx, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}
	if sctx == nil {
		return fmt.Errorf("%w: rename requires a session", shared.ErrInvalidArgument)
	}

	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	membership := session.NewMembership(svc, store, r.logger)
	participant, err := membership.Rename(ctx, sctx.ID, name)
	if err != nil {
		return err
	}
	return r.writePlain("Renamed to %s\n", participant.Name)
}

// SessionInfo shows the stored identity for a session.
func (r *Runner) SessionInfo(ctx context.Context, cmd *cli.Command) error {
	raw := r.resolveSession(cmd)
	if raw == "" {
		return fmt.Errorf("%w: no session selected", shared.ErrInvalidArgument)
	}

	id := session.DetectSessionID(raw)
	if id == "" {
		return fmt.Errorf("%w: %q does not reference a session", shared.ErrInvalidArgument, raw)
	}

	db, store, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	participant, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("no stored identity for session %s: %w", id, err)
	}

	r.writePlain("Session: %s\n", id)
	r.writePlain("Participant: %s (%s)\n", participant.Name, participant.ID)
	if participant.Icon != "" {
		r.writePlain("Icon: %s\n", participant.Icon)
	}
	if participant.Color != "" {
		r.writePlain("Color: %s\n", participant.Color)
	}
	return nil
}
