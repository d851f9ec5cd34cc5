package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/desertthunder/jbx/internal/formatter"
	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/desertthunder/jbx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// QueueShow prints the current queue snapshot once.
func (r *Runner) QueueShow(ctx context.Context, cmd *cli.Command) error {
	svc, _, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	snapshot, err := svc.CurrentQueue(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch queue: %w", err)
	}

	if cmd.Bool("csv") {
		data, err := formatter.TracksToCSV(snapshot.UserQueue)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	}
	if cmd.Bool("json") {
		return r.writeJSON(snapshot, cmd.Bool("pretty"))
	}
	return r.writePlain("%s", formatter.SnapshotToText(snapshot))
}

// QueueWatch polls the queue on the configured interval and re-renders
// each applied snapshot until interrupted.
func (r *Runner) QueueWatch(ctx context.Context, cmd *cli.Command) error {
	svc, sctx, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if sctx != nil {
		r.writePlain("Watching session %s (ctrl+c to stop)\n\n", sctx.ID)
	} else {
		r.writePlain("Watching queue (ctrl+c to stop)\n\n")
	}

	syncer := tasks.NewSyncClient(tasks.SyncClientOpts{
		Service:  svc,
		Interval: r.config.PollInterval(),
		Logger:   r.logger,
		OnSnapshot: func(s models.QueueSnapshot) {
			r.writePlain("%s\n", formatter.SnapshotToText(&s))
		},
		OnError: func(err error) {
			r.writePlain("Queue refresh failed: %v\n", err)
		},
	})
	syncer.Run(ctx)
	return nil
}

// QueueAdd submits one track through the enqueue gateway so the CLI
// shares the debounce, rate-floor and status-mapping path with the TUI.
func (r *Runner) QueueAdd(ctx context.Context, cmd *cli.Command) error {
	uri := cmd.StringArg("uri")
	if uri == "" {
		return fmt.Errorf("%w: track uri", shared.ErrMissingArgument)
	}

	svc, sctx, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	var participantID string
	if sctx != nil {
		db, store, err := r.openStore()
		if err != nil {
			r.logger.Warn("participant store unavailable, adding anonymously", "error", err)
		} else {
			defer db.Close()
			membership := session.NewMembership(svc, store, shared.WithLogger(r.logger, "session", sctx.ID))
			participant, joinedNow, err := membership.Ensure(ctx, sctx.ID)
			if err != nil {
				r.logger.Warn("could not resolve participant, adding anonymously", "error", err)
			} else {
				participantID = participant.ID
				if joinedNow {
					r.writePlain("Joined session as %s\n", participant.Name)
				}
			}
		}
	}

	track := models.Track{
		URI:     uri,
		Name:    cmd.String("name"),
		Artists: cmd.String("artist"),
	}
	if track.Name == "" {
		track.Name = uri
	}

	notices := make(chan tasks.Notice, 1)
	gate := tasks.NewGateway(tasks.GatewayOpts{
		Service: svc,
		Logger:  r.logger,
		Notify: func(n tasks.Notice) {
			notices <- n
		},
		ParticipantID: func() string { return participantID },
	})

	gate.Add(track)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case notice := <-notices:
		if notice.Kind == tasks.NoticeError {
			return fmt.Errorf("%w: %s", shared.ErrAPIRequest, notice.Message)
		}
		return r.writePlain("%s\n", notice.Message)
	}
}

// QueueSkip skips the current track.
func (r *Runner) QueueSkip(ctx context.Context, cmd *cli.Command) error {
	svc, _, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}
	return r.adminAction(ctx, svc, services.AdminSkipTrack)
}

// QueueClear clears the shared queue after confirmation.
func (r *Runner) QueueClear(ctx context.Context, cmd *cli.Command) error {
	svc, _, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	if !cmd.Bool("yes") {
		r.writePlain("Clear the shared queue for everyone? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return r.writePlain("Aborted\n")
		}
	}

	return r.adminAction(ctx, svc, services.AdminClearQueue)
}

func (r *Runner) adminAction(ctx context.Context, svc services.Service, action services.AdminActionKind) error {
	result, err := svc.AdminAction(ctx, action)
	if err != nil {
		return fmt.Errorf("failed to perform %s: %w", action, err)
	}
	if !result.OK() {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, result.Message)
	}
	return r.writePlain("%s\n", result.Message)
}

// QueuePlayNow starts immediate playback of a track.
func (r *Runner) QueuePlayNow(ctx context.Context, cmd *cli.Command) error {
	return r.play(ctx, cmd, true)
}

// QueuePlayNext inserts a track at the head of the queue.
func (r *Runner) QueuePlayNext(ctx context.Context, cmd *cli.Command) error {
	return r.play(ctx, cmd, false)
}

func (r *Runner) play(ctx context.Context, cmd *cli.Command, now bool) error {
	uri := cmd.StringArg("uri")
	if uri == "" {
		return fmt.Errorf("%w: track uri", shared.ErrMissingArgument)
	}

	svc, _, err := r.scoped(ctx, cmd)
	if err != nil {
		return err
	}

	var result *services.StatusResult
	if now {
		result, err = svc.PlayNow(ctx, uri)
	} else {
		result, err = svc.PlayNext(ctx, uri)
	}
	if err != nil {
		return fmt.Errorf("failed to play track: %w", err)
	}
	if !result.OK() {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, result.Message)
	}
	return r.writePlain("%s\n", result.Message)
}
