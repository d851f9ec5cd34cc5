package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/desertthunder/jbx/internal/services"
	"github.com/urfave/cli/v3"
)

func TestQueueWatchPrintsRefreshFailures(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(RunnerOpts{
		Client: services.NewJukeboxClient("http://127.0.0.1:1", nil),
		Output: &buf,
	})

	// A cancelled context fails the initial refresh and stops the poll
	// loop after it, so the command returns after one pass.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := &cli.Command{
		Name:   "watch",
		Flags:  []cli.Flag{sessionFlag()},
		Action: runner.QueueWatch,
	}
	if err := cmd.Run(ctx, []string{"watch"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(buf.String(), "Queue refresh failed") {
		t.Errorf("expected a refresh failure line, got %q", buf.String())
	}
}
