// Jukebox server implementation of [Service]
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "http://localhost:5000"

// JukeboxClient implements [Service] against a jukebox server over HTTP.
//
// A zero sessionID means global mode; session-scoped clients are derived
// with [JukeboxClient.WithSession] and are immutable thereafter.
type JukeboxClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	timeout    time.Duration
	sessionID  string
	clientID   string
}

var _ Service = (*JukeboxClient)(nil)

// NewJukeboxClient creates a client for the server at baseURL.
func NewJukeboxClient(baseURL string, client *http.Client) *JukeboxClient {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &JukeboxClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
		clientID:   shared.GenerateID(),
	}
}

// SetRateLimit caps outgoing requests at rps requests per second.
func (c *JukeboxClient) SetRateLimit(rps float64) {
	if rps > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// SetTimeout sets the per-request timeout applied on top of the caller's context.
func (c *JukeboxClient) SetTimeout(d time.Duration) {
	c.timeout = d
}

// WithSession derives a session-scoped client. Every request from the
// derived client targets /session/{id}/... paths where applicable and
// carries "Authorization: Bearer <token>".
func (c *JukeboxClient) WithSession(ctx context.Context, sessionID, token string) *JukeboxClient {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	scoped := *c
	scoped.httpClient = oauth2.NewClient(ctx, src)
	scoped.sessionID = sessionID
	return &scoped
}

// SessionID returns the session this client is scoped to, or "" in global mode.
func (c *JukeboxClient) SessionID() string { return c.sessionID }

// scopedPath prefixes path with /session/{id} when the client is session-scoped.
func (c *JukeboxClient) scopedPath(path string) string {
	if c.sessionID == "" {
		return path
	}
	return "/session/" + c.sessionID + path
}

// do performs one rate-limited HTTP request and decodes a JSON response into result.
func (c *JukeboxClient) do(ctx context.Context, method, path, contentType string, body io.Reader, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Client-ID", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s %s: status %d", shared.ErrAPIRequest, method, path, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %s %s: %v", shared.ErrMalformedResponse, method, path, err)
		}
	}

	return nil
}

func (c *JukeboxClient) getJSON(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, result)
}

func (c *JukeboxClient) postForm(ctx context.Context, path string, form url.Values, result any) error {
	return c.do(ctx, http.MethodPost, path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()), result)
}

func (c *JukeboxClient) postJSON(ctx context.Context, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, "application/json", body, result)
}

// CurrentQueue fetches the queue snapshot from /current_queue (or the
// session-scoped variant). A 2xx body missing all of current_track,
// user_queue and radio_queue is reported as [shared.ErrMalformedResponse]
// so callers can keep displaying the previous snapshot.
func (c *JukeboxClient) CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error) {
	var raw struct {
		CurrentTrack     *models.Track   `json:"current_track"`
		UserQueue        *[]models.Track `json:"user_queue"`
		RadioQueue       *[]models.Track `json:"radio_queue"`
		ParticipantCount int             `json:"participant_count"`
	}

	if err := c.getJSON(ctx, c.scopedPath("/current_queue"), &raw); err != nil {
		return nil, err
	}

	if raw.CurrentTrack == nil && raw.UserQueue == nil && raw.RadioQueue == nil {
		return nil, fmt.Errorf("%w: queue response has none of current_track, user_queue, radio_queue", shared.ErrMalformedResponse)
	}

	snapshot := &models.QueueSnapshot{
		CurrentTrack:     raw.CurrentTrack,
		ParticipantCount: raw.ParticipantCount,
	}
	if raw.UserQueue != nil {
		snapshot.UserQueue = *raw.UserQueue
	}
	if raw.RadioQueue != nil {
		snapshot.RadioQueue = *raw.RadioQueue
	}

	return snapshot, nil
}

// Enqueue submits a track via /queue (or the session-scoped variant).
func (c *JukeboxClient) Enqueue(ctx context.Context, req EnqueueRequest) (*StatusResult, error) {
	form := url.Values{}
	form.Set("track_uri", req.TrackURI)
	form.Set("track_name", req.TrackName)
	form.Set("artist_name", req.ArtistName)
	if req.ParticipantID != "" {
		form.Set("participant_id", req.ParticipantID)
	}
	if req.IsAdmin {
		form.Set("is_admin", "true")
	}

	var result StatusResult
	if err := c.postForm(ctx, c.scopedPath("/queue"), form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// PlayNow starts immediate playback of the given track.
func (c *JukeboxClient) PlayNow(ctx context.Context, trackURI string) (*StatusResult, error) {
	return c.playForm(ctx, "/play_now", trackURI)
}

// PlayNext inserts the given track at the head of the queue.
func (c *JukeboxClient) PlayNext(ctx context.Context, trackURI string) (*StatusResult, error) {
	return c.playForm(ctx, "/play_next", trackURI)
}

func (c *JukeboxClient) playForm(ctx context.Context, path, trackURI string) (*StatusResult, error) {
	form := url.Values{}
	form.Set("track_uri", trackURI)

	var result StatusResult
	if err := c.postForm(ctx, path, form, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdminAction posts a privileged queue mutation to /admin_actions.
func (c *JukeboxClient) AdminAction(ctx context.Context, action AdminActionKind) (*StatusResult, error) {
	payload := map[string]string{"action": string(action)}

	var result StatusResult
	if err := c.postJSON(ctx, "/admin_actions", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AdminStatus resolves the current admin flag via /check_admin_status.
func (c *JukeboxClient) AdminStatus(ctx context.Context) (bool, error) {
	var result struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.getJSON(ctx, "/check_admin_status", &result); err != nil {
		return false, err
	}
	return result.IsAdmin, nil
}

// CheckAdminKeyword submits a query to /check_admin; the server decides
// whether it matches the activation keyword.
func (c *JukeboxClient) CheckAdminKeyword(ctx context.Context, query string) (bool, error) {
	form := url.Values{}
	form.Set("query", query)

	var result struct {
		IsAdmin bool `json:"is_admin"`
	}
	if err := c.postForm(ctx, "/check_admin", form, &result); err != nil {
		return false, err
	}
	return result.IsAdmin, nil
}

// DeactivateAdmin clears the admin flag server-side.
func (c *JukeboxClient) DeactivateAdmin(ctx context.Context) (*StatusResult, error) {
	var result StatusResult
	if err := c.postJSON(ctx, "/deactivate_admin", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Recommendations looks up tracks for a query; the server responds with a
// bare track array.
func (c *JukeboxClient) Recommendations(ctx context.Context, query string) ([]models.Track, error) {
	path := c.scopedPath("/recommendations") + "?query=" + url.QueryEscape(strings.TrimSpace(query))

	var tracks []models.Track
	if err := c.getJSON(ctx, path, &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// Search performs a catalog search; the server wraps results in {tracks: [...]}.
func (c *JukeboxClient) Search(ctx context.Context, query string) ([]models.Track, error) {
	path := c.scopedPath("/search") + "?query=" + url.QueryEscape(strings.TrimSpace(query))

	var result struct {
		Tracks []models.Track `json:"tracks"`
	}
	if err := c.getJSON(ctx, path, &result); err != nil {
		return nil, err
	}
	return result.Tracks, nil
}

// SessionToken obtains the bearer token for the given session.
func (c *JukeboxClient) SessionToken(ctx context.Context, sessionID string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	if err := c.getJSON(ctx, "/session/"+sessionID+"/token", &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", fmt.Errorf("%w: empty token for session %s", shared.ErrMalformedResponse, sessionID)
	}
	return result.Token, nil
}

// JoinSession registers a participant for the given session.
func (c *JukeboxClient) JoinSession(ctx context.Context, sessionID string) (*JoinResult, error) {
	var result JoinResult
	if err := c.postJSON(ctx, "/session/"+sessionID+"/join", nil, &result); err != nil {
		return nil, err
	}
	if result.Participant.ID == "" {
		return nil, fmt.Errorf("%w: join response missing participant", shared.ErrMalformedResponse)
	}
	return &result, nil
}

// UpdateParticipant renames a participant in the given session.
func (c *JukeboxClient) UpdateParticipant(ctx context.Context, sessionID, participantID, name string) (*models.Participant, error) {
	payload := map[string]string{"participant_id": participantID, "name": name}

	var result struct {
		Participant *models.Participant `json:"participant"`
	}
	if err := c.postJSON(ctx, "/session/"+sessionID+"/update_participant", payload, &result); err != nil {
		return nil, err
	}
	if result.Participant == nil {
		return nil, fmt.Errorf("%w: update_participant response missing participant", shared.ErrMalformedResponse)
	}
	return result.Participant, nil
}

// CreateSession creates a new shareable session.
func (c *JukeboxClient) CreateSession(ctx context.Context) (*models.SessionHandle, error) {
	var handle models.SessionHandle
	if err := c.postJSON(ctx, "/create_session", nil, &handle); err != nil {
		return nil, err
	}
	if handle.SessionID == "" || handle.RedirectURL == "" {
		return nil, fmt.Errorf("%w: create_session response missing session_id or redirect_url", shared.ErrMalformedResponse)
	}
	return &handle, nil
}
