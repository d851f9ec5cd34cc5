package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/jbx/internal/formatter"
	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search looks up tracks for a query. The query is first submitted for
// admin keyword matching; a match activates admin mode instead of
// searching.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	svc, _, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	admin := session.NewAdminState(svc, r.logger)
	if activated, err := admin.CheckKeyword(ctx, query); err == nil && activated {
		return r.writePlain("Admin mode activated\n")
	}

	var tracks []models.Track
	if cmd.Bool("radio") {
		tracks, err = svc.Recommendations(ctx, query)
	} else {
		tracks, err = svc.Search(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(tracks, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", formatter.TracksToText(tracks))
}
