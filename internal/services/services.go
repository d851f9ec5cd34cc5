package services

import (
	"context"

	"github.com/desertthunder/jbx/internal/models"
)

// Enqueue/mutation outcome statuses embedded in 2xx response bodies.
const (
	StatusSuccess  = "success"
	StatusCooldown = "cooldown"
	StatusError    = "error"
)

// AdminActionKind enumerates the privileged queue mutations.
type AdminActionKind string

const (
	AdminClearQueue AdminActionKind = "clear_queue"
	AdminSkipTrack  AdminActionKind = "skip_track"
)

// StatusResult is the common mutation response body.
//
// Status is one of [StatusSuccess], [StatusCooldown] or [StatusError];
// anything else is treated as an error by callers.
type StatusResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Type     string `json:"type,omitempty"`
	Playlist string `json:"playlist,omitempty"`
}

// OK reports whether the mutation was accepted.
func (r *StatusResult) OK() bool { return r.Status == StatusSuccess }

// EnqueueRequest carries one "add track" intent to the server.
//
// ParticipantID and IsAdmin are optional augmentations; their absence is
// not an error and the mutation proceeds unassociated.
type EnqueueRequest struct {
	TrackURI      string
	TrackName     string
	ArtistName    string
	ParticipantID string
	IsAdmin       bool
}

// JoinResult is the response to joining a session.
type JoinResult struct {
	Participant      models.Participant `json:"participant"`
	ParticipantCount int                `json:"participant_count"`
}

// Service defines every jukebox server operation the client consumes.
type Service interface {
	// CurrentQueue fetches the authoritative queue snapshot.
	CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error)
	// Enqueue submits a track to the queue.
	Enqueue(ctx context.Context, req EnqueueRequest) (*StatusResult, error)
	// PlayNow starts immediate playback of a track (admin only).
	PlayNow(ctx context.Context, trackURI string) (*StatusResult, error)
	// PlayNext inserts a track at the head of the queue (admin only).
	PlayNext(ctx context.Context, trackURI string) (*StatusResult, error)
	// AdminAction performs a privileged queue mutation (clear/skip).
	AdminAction(ctx context.Context, action AdminActionKind) (*StatusResult, error)
	// AdminStatus resolves whether this client currently holds admin privileges.
	AdminStatus(ctx context.Context) (bool, error)
	// CheckAdminKeyword submits a search query the server may match against
	// the secret admin keyword.
	CheckAdminKeyword(ctx context.Context, query string) (bool, error)
	// DeactivateAdmin clears the admin flag server-side.
	DeactivateAdmin(ctx context.Context) (*StatusResult, error)
	// Recommendations looks up tracks for a free-text query.
	Recommendations(ctx context.Context, query string) ([]models.Track, error)
	// Search performs a catalog search for a free-text query.
	Search(ctx context.Context, query string) ([]models.Track, error)
	// SessionToken obtains the bearer token for a session.
	SessionToken(ctx context.Context, sessionID string) (string, error)
	// JoinSession registers this client as a participant of a session.
	JoinSession(ctx context.Context, sessionID string) (*JoinResult, error)
	// UpdateParticipant renames this client's participant identity.
	UpdateParticipant(ctx context.Context, sessionID, participantID, name string) (*models.Participant, error)
	// CreateSession creates a new shareable session.
	CreateSession(ctx context.Context) (*models.SessionHandle, error)
}
