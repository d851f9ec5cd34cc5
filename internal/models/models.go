package models

// Track represents one entry in the catalog or a queue.
//
// URI is an opaque identifier assigned by the backing music service.
// Artists is a single display string, already joined by the server.
type Track struct {
	URI      string `json:"uri"`
	Name     string `json:"name"`
	Artists  string `json:"artists"`
	AlbumArt string `json:"album_art,omitempty"`
}

// QueueSnapshot is the authoritative server-reported playback state at one
// instant: the current track (if any), the user-submitted queue and the
// system-filled radio queue.
type QueueSnapshot struct {
	CurrentTrack     *Track  `json:"current_track"`
	UserQueue        []Track `json:"user_queue"`
	RadioQueue       []Track `json:"radio_queue"`
	ParticipantCount int     `json:"participant_count,omitempty"`
}

// Empty reports whether the snapshot holds no queued tracks at all.
func (s *QueueSnapshot) Empty() bool {
	return s.CurrentTrack == nil && len(s.UserQueue) == 0 && len(s.RadioQueue) == 0
}

// Participant is a session-scoped pseudonymous identity assigned by the
// server on first join.
type Participant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// SessionHandle is the server's response to creating a new session.
type SessionHandle struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}
