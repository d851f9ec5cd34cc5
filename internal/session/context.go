package session

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/desertthunder/jbx/internal/shared"
)

// sessionCodeRe matches the 8-character alphanumeric session codes the
// server embeds as the first path segment of shareable links.
var sessionCodeRe = regexp.MustCompile(`^[a-zA-Z0-9]{8}$`)

// Context is an established session scope: the code and the bearer token
// for all session-scoped calls. A nil Context means global mode.
type Context struct {
	ID    string
	Token string
}

// DetectSessionID extracts a session code from raw input: a bare code, a
// shareable link whose first path segment is a code, or a legacy
// session_id query parameter. Returns "" when raw does not reference a
// session (global mode).
func DetectSessionID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	if sessionCodeRe.MatchString(raw) {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	if segment, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/"); sessionCodeRe.MatchString(segment) {
		return segment
	}

	// Legacy links carried the session in a query parameter.
	if id := u.Query().Get("session_id"); sessionCodeRe.MatchString(id) {
		return id
	}

	return ""
}

// Establish performs the one-time token fetch for a detected session id.
//
// Failure means the session could not be initialized; callers must not
// fall back to global mode, which would silently act on the wrong queue.
func Establish(ctx context.Context, svc services.Service, sessionID string, logger *log.Logger) (*Context, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: no session id", shared.ErrSessionInit)
	}

	token, err := svc.SessionToken(ctx, sessionID)
	if err != nil {
		logger.Error("session token fetch failed", "session", sessionID, "error", err)
		return nil, fmt.Errorf("%w: %v", shared.ErrSessionInit, err)
	}

	logger.Debug("session established", "session", sessionID)
	return &Context{ID: sessionID, Token: token}, nil
}
