package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/models"
	"github.com/jonboulle/clockwork"
)

// DefaultPollInterval is the fixed queue poll cadence.
const DefaultPollInterval = 5 * time.Second

// Snapshotter is the read side of the queue API the sync client needs.
type Snapshotter interface {
	CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error)
}

// SyncClient maintains a live view of the server's queue state.
//
// Snapshots are replaced wholesale, never merged. Every refresh carries a
// monotonically increasing sequence number; a completion whose sequence is
// below the last applied one is discarded, so a slow response can never
// regress the displayed state. On failure the previous snapshot is
// retained: stale-but-valid beats nothing.
type SyncClient struct {
	svc      Snapshotter
	clock    clockwork.Clock
	interval time.Duration
	logger   *log.Logger

	onSnapshot func(models.QueueSnapshot)
	onError    func(error)

	mu      sync.Mutex
	seq     uint64
	applied uint64
	current *models.QueueSnapshot
}

// SyncClientOpts configures a SyncClient.
type SyncClientOpts struct {
	Service    Snapshotter
	Clock      clockwork.Clock
	Interval   time.Duration
	Logger     *log.Logger
	OnSnapshot func(models.QueueSnapshot) // invoked with each applied snapshot
	OnError    func(error)                // invoked once per failed refresh
}

// NewSyncClient creates a sync client with the provided options.
func NewSyncClient(opts SyncClientOpts) *SyncClient {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultPollInterval
	}

	return &SyncClient{
		svc:        opts.Service,
		clock:      opts.Clock,
		interval:   opts.Interval,
		logger:     opts.Logger,
		onSnapshot: opts.OnSnapshot,
		onError:    opts.OnError,
	}
}

// Refresh fetches one snapshot and applies it unless a newer refresh has
// already been applied. Safe to call out-of-band while Run is polling.
func (c *SyncClient) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	snapshot, err := c.svc.CurrentQueue(ctx)
	if err != nil {
		c.logger.Warn("queue refresh failed, keeping previous snapshot", "seq", seq, "error", err)
		if c.onError != nil {
			c.onError(err)
		}
		return
	}

	c.mu.Lock()
	if seq < c.applied {
		c.mu.Unlock()
		c.logger.Debug("discarding stale queue response", "seq", seq, "applied", c.applied)
		return
	}
	c.applied = seq
	c.current = snapshot
	c.mu.Unlock()

	if c.onSnapshot != nil {
		c.onSnapshot(*snapshot)
	}
}

// Run refreshes immediately, then on every interval tick until ctx is
// cancelled. Failed ticks wait for the next one; there is no backoff.
func (c *SyncClient) Run(ctx context.Context) {
	c.Refresh(ctx)

	ticker := c.clock.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			c.Refresh(ctx)
		}
	}
}

// Snapshot returns the last applied snapshot, or nil before the first
// successful refresh.
func (c *SyncClient) Snapshot() *models.QueueSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
