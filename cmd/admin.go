package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jbx/internal/session"
	"github.com/urfave/cli/v3"
)

// AdminStatus checks whether this client currently holds admin privileges.
func (r *Runner) AdminStatus(ctx context.Context, cmd *cli.Command) error {
	state := session.NewAdminState(r.client, r.logger)
	if err := state.Init(ctx); err != nil {
		return fmt.Errorf("failed to check admin status: %w", err)
	}
	return r.writePlain("Admin: %s\n", state.Flag())
}

// AdminDeactivate drops admin privileges. The local flag is always
// cleared; a failed network call is reported but not fatal.
func (r *Runner) AdminDeactivate(ctx context.Context, cmd *cli.Command) error {
	state := session.NewAdminState(r.client, r.logger)
	if err := state.Deactivate(ctx); err != nil {
		r.writePlain("Deactivated locally; server request failed: %v\n", err)
		return nil
	}
	return r.writePlain("Admin mode deactivated\n")
}
