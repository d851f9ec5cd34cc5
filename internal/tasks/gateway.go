package tasks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/jonboulle/clockwork"
)

const (
	// DefaultDebounce is the hold window before an enqueue is sent; a
	// burst of Add calls inside it collapses to the last call.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultRateFloor is the minimum spacing between send starts;
	// sends attempted sooner are dropped outright.
	DefaultRateFloor = 300 * time.Millisecond
)

// Enqueuer is the mutation side of the queue API the gateway needs.
type Enqueuer interface {
	Enqueue(ctx context.Context, req services.EnqueueRequest) (*services.StatusResult, error)
}

// Gateway turns a user's "add track" intent into exactly one network
// mutation per burst.
//
// Three layers guard the server: a debounce window coalescing bursts into
// the last call's parameters, a hard rate floor between send starts that
// drops (never queues) early sends, and single-flight cancellation - a
// new send aborts any in-flight call first. Aborted calls are discarded
// silently, never surfaced as errors.
type Gateway struct {
	svc    Enqueuer
	clock  clockwork.Clock
	logger *log.Logger

	debounce time.Duration
	floor    time.Duration

	notify  func(Notice)
	refresh func()

	participantID func() string
	isAdmin       func() bool

	mu       sync.Mutex
	timer    clockwork.Timer
	lastSend time.Time
	inflight context.Context
	cancel   context.CancelFunc
}

// GatewayOpts configures a Gateway.
type GatewayOpts struct {
	Service   Enqueuer
	Clock     clockwork.Clock
	Logger    *log.Logger
	Debounce  time.Duration
	RateFloor time.Duration
	Notify    func(Notice) // receives the outcome notice for each resolved send
	Refresh   func()       // triggered out-of-band after a successful enqueue

	// ParticipantID supplies the cached session participant id, "" when
	// none exists. IsAdmin supplies the current admin flag. Both optional.
	ParticipantID func() string
	IsAdmin       func() bool
}

// NewGateway creates a gateway with the provided options.
func NewGateway(opts GatewayOpts) *Gateway {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.RateFloor <= 0 {
		opts.RateFloor = DefaultRateFloor
	}

	return &Gateway{
		svc:           opts.Service,
		clock:         opts.Clock,
		logger:        opts.Logger,
		debounce:      opts.Debounce,
		floor:         opts.RateFloor,
		notify:        opts.Notify,
		refresh:       opts.Refresh,
		participantID: opts.ParticipantID,
		isAdmin:       opts.IsAdmin,
	}
}

// Add registers an enqueue intent for the given track. The send fires
// after the debounce window; a newer Add inside the window replaces the
// pending one, so only the last call of a burst reaches the network.
func (g *Gateway) Add(track models.Track) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.timer != nil {
		g.timer.Stop()
	}

	g.logger.Debug("enqueue scheduled", "track", track.Name, "artist", track.Artists)
	g.timer = g.clock.AfterFunc(g.debounce, func() {
		g.send(track)
	})
}

// send starts the network mutation for a debounced Add, enforcing the
// rate floor and aborting any superseded in-flight call.
func (g *Gateway) send(track models.Track) {
	g.mu.Lock()

	now := g.clock.Now()
	if !g.lastSend.IsZero() && now.Sub(g.lastSend) < g.floor {
		g.mu.Unlock()
		g.logger.Debug("enqueue dropped by rate floor", "track", track.Name)
		return
	}
	g.lastSend = now

	if g.cancel != nil {
		g.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	g.inflight = ctx
	g.cancel = cancel
	g.mu.Unlock()

	req := services.EnqueueRequest{
		TrackURI:   track.URI,
		TrackName:  track.Name,
		ArtistName: track.Artists,
	}
	if g.participantID != nil {
		req.ParticipantID = g.participantID()
	}
	if g.isAdmin != nil {
		req.IsAdmin = g.isAdmin()
	}

	result, err := g.svc.Enqueue(ctx, req)

	g.mu.Lock()
	if g.inflight == ctx {
		g.inflight = nil
		g.cancel = nil
	}
	g.mu.Unlock()
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			g.logger.Debug("superseded enqueue aborted", "track", track.Name)
			return
		}
		g.logger.Error("enqueue failed", "track", track.Name, "error", err)
		g.emit(errorNotice("Error adding track to queue"))
		return
	}

	switch result.Status {
	case services.StatusSuccess:
		if result.Playlist != "" {
			g.emit(successNotice("Added %s to %s", track.Name, result.Playlist))
		} else if result.Message != "" {
			g.emit(successNotice("%s", result.Message))
		} else {
			g.emit(successNotice("Added %s to queue", track.Name))
		}
		if g.refresh != nil {
			g.refresh()
		}
	case services.StatusCooldown:
		g.emit(infoNotice("%s", result.Message))
	default:
		g.emit(errorNotice("%s", result.Message))
	}
}

func (g *Gateway) emit(n Notice) {
	if g.notify != nil {
		g.notify(n)
	}
}
