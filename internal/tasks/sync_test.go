package tasks

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/jonboulle/clockwork"
)

// snapshotterFunc adapts a function to the Snapshotter interface.
type snapshotterFunc func(ctx context.Context) (*models.QueueSnapshot, error)

func (f snapshotterFunc) CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error) {
	return f(ctx)
}

func namedSnapshot(name string) *models.QueueSnapshot {
	return &models.QueueSnapshot{CurrentTrack: &models.Track{URI: "spotify:track:" + name, Name: name}}
}

func TestSyncClient(t *testing.T) {
	logger := shared.NewLogger(io.Discard)

	t.Run("refresh replaces the snapshot wholesale", func(t *testing.T) {
		svc := snapshotterFunc(func(ctx context.Context) (*models.QueueSnapshot, error) {
			return namedSnapshot("fresh"), nil
		})

		var applied []models.QueueSnapshot
		client := NewSyncClient(SyncClientOpts{
			Service:    svc,
			Logger:     logger,
			OnSnapshot: func(s models.QueueSnapshot) { applied = append(applied, s) },
		})

		client.Refresh(context.Background())

		if snapshot := client.Snapshot(); snapshot == nil || snapshot.CurrentTrack.Name != "fresh" {
			t.Fatalf("expected fresh snapshot, got %+v", snapshot)
		}
		if len(applied) != 1 {
			t.Errorf("expected one applied snapshot, got %d", len(applied))
		}
	})

	t.Run("failed refresh keeps the previous snapshot", func(t *testing.T) {
		var calls int
		svc := snapshotterFunc(func(ctx context.Context) (*models.QueueSnapshot, error) {
			calls++
			if calls == 1 {
				return namedSnapshot("good"), nil
			}
			return nil, errors.New("server unavailable")
		})

		var failures int
		client := NewSyncClient(SyncClientOpts{
			Service: svc,
			Logger:  logger,
			OnError: func(error) { failures++ },
		})

		client.Refresh(context.Background())
		client.Refresh(context.Background())

		if snapshot := client.Snapshot(); snapshot == nil || snapshot.CurrentTrack.Name != "good" {
			t.Fatalf("expected previous snapshot retained, got %+v", snapshot)
		}
		if failures != 1 {
			t.Errorf("expected one error callback, got %d", failures)
		}
	})

	t.Run("stale completion never regresses the displayed state", func(t *testing.T) {
		release := make(chan struct{})
		started := make(chan struct{})
		var calls int32

		svc := snapshotterFunc(func(ctx context.Context) (*models.QueueSnapshot, error) {
			if atomic.AddInt32(&calls, 1) == 1 {
				close(started)
				<-release
				return namedSnapshot("stale"), nil
			}
			return namedSnapshot("current"), nil
		})

		var mu sync.Mutex
		var applied []string
		client := NewSyncClient(SyncClientOpts{
			Service: svc,
			Logger:  logger,
			OnSnapshot: func(s models.QueueSnapshot) {
				mu.Lock()
				applied = append(applied, s.CurrentTrack.Name)
				mu.Unlock()
			},
		})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			client.Refresh(context.Background())
		}()
		<-started

		// A newer refresh completes while the first is still in flight.
		client.Refresh(context.Background())
		close(release)
		wg.Wait()

		if snapshot := client.Snapshot(); snapshot.CurrentTrack.Name != "current" {
			t.Fatalf("stale response replaced newer state: %+v", snapshot)
		}
		mu.Lock()
		defer mu.Unlock()
		if len(applied) != 1 || applied[0] != "current" {
			t.Errorf("expected only the newer snapshot applied, got %v", applied)
		}
	})

	t.Run("run refreshes immediately then on each tick", func(t *testing.T) {
		clock := clockwork.NewFakeClock()
		var calls int32
		svc := snapshotterFunc(func(ctx context.Context) (*models.QueueSnapshot, error) {
			atomic.AddInt32(&calls, 1)
			return namedSnapshot("tick"), nil
		})

		client := NewSyncClient(SyncClientOpts{
			Service:  svc,
			Clock:    clock,
			Interval: DefaultPollInterval,
			Logger:   logger,
		})

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			client.Run(ctx)
			close(done)
		}()

		clock.BlockUntil(1)
		if got := atomic.LoadInt32(&calls); got != 1 {
			t.Errorf("expected immediate refresh before first tick, got %d calls", got)
		}

		clock.Advance(DefaultPollInterval)
		deadline := time.After(2 * time.Second)
		for atomic.LoadInt32(&calls) < 2 {
			select {
			case <-deadline:
				t.Fatal("timed out waiting for tick refresh")
			case <-time.After(5 * time.Millisecond):
			}
		}

		cancel()
		<-done
	})
}
