// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/services"
)

// MockService is a configurable test double for [services.Service].
// Each field overrides the corresponding method; nil fields return zero
// values.
type MockService struct {
	CurrentQueueFn      func(ctx context.Context) (*models.QueueSnapshot, error)
	EnqueueFn           func(ctx context.Context, req services.EnqueueRequest) (*services.StatusResult, error)
	SessionTokenFn      func(ctx context.Context, sessionID string) (string, error)
	JoinSessionFn       func(ctx context.Context, sessionID string) (*services.JoinResult, error)
	AdminStatusFn       func(ctx context.Context) (bool, error)
	CheckAdminKeywordFn func(ctx context.Context, query string) (bool, error)
	DeactivateAdminFn   func(ctx context.Context) (*services.StatusResult, error)
	UpdateParticipantFn func(ctx context.Context, sessionID, participantID, name string) (*models.Participant, error)
	CreateSessionFn     func(ctx context.Context) (*models.SessionHandle, error)

	mu    sync.Mutex
	calls []string
}

var _ services.Service = (*MockService)(nil)

func (m *MockService) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

// Calls returns the names of methods invoked, in order.
func (m *MockService) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *MockService) CurrentQueue(ctx context.Context) (*models.QueueSnapshot, error) {
	m.record("CurrentQueue")
	if m.CurrentQueueFn != nil {
		return m.CurrentQueueFn(ctx)
	}
	return &models.QueueSnapshot{}, nil
}

func (m *MockService) Enqueue(ctx context.Context, req services.EnqueueRequest) (*services.StatusResult, error) {
	m.record("Enqueue")
	if m.EnqueueFn != nil {
		return m.EnqueueFn(ctx, req)
	}
	return &services.StatusResult{Status: services.StatusSuccess}, nil
}

func (m *MockService) PlayNow(ctx context.Context, trackURI string) (*services.StatusResult, error) {
	m.record("PlayNow")
	return &services.StatusResult{Status: services.StatusSuccess}, nil
}

func (m *MockService) PlayNext(ctx context.Context, trackURI string) (*services.StatusResult, error) {
	m.record("PlayNext")
	return &services.StatusResult{Status: services.StatusSuccess}, nil
}

func (m *MockService) AdminAction(ctx context.Context, action services.AdminActionKind) (*services.StatusResult, error) {
	m.record("AdminAction")
	return &services.StatusResult{Status: services.StatusSuccess}, nil
}

func (m *MockService) AdminStatus(ctx context.Context) (bool, error) {
	m.record("AdminStatus")
	if m.AdminStatusFn != nil {
		return m.AdminStatusFn(ctx)
	}
	return false, nil
}

func (m *MockService) CheckAdminKeyword(ctx context.Context, query string) (bool, error) {
	m.record("CheckAdminKeyword")
	if m.CheckAdminKeywordFn != nil {
		return m.CheckAdminKeywordFn(ctx, query)
	}
	return false, nil
}

func (m *MockService) DeactivateAdmin(ctx context.Context) (*services.StatusResult, error) {
	m.record("DeactivateAdmin")
	if m.DeactivateAdminFn != nil {
		return m.DeactivateAdminFn(ctx)
	}
	return &services.StatusResult{Status: services.StatusSuccess}, nil
}

func (m *MockService) Recommendations(ctx context.Context, query string) ([]models.Track, error) {
	m.record("Recommendations")
	return []models.Track{}, nil
}

func (m *MockService) Search(ctx context.Context, query string) ([]models.Track, error) {
	m.record("Search")
	return []models.Track{}, nil
}

func (m *MockService) SessionToken(ctx context.Context, sessionID string) (string, error) {
	m.record("SessionToken")
	if m.SessionTokenFn != nil {
		return m.SessionTokenFn(ctx, sessionID)
	}
	return "", errors.New("no token")
}

func (m *MockService) JoinSession(ctx context.Context, sessionID string) (*services.JoinResult, error) {
	m.record("JoinSession")
	if m.JoinSessionFn != nil {
		return m.JoinSessionFn(ctx, sessionID)
	}
	return nil, errors.New("join not configured")
}

func (m *MockService) UpdateParticipant(ctx context.Context, sessionID, participantID, name string) (*models.Participant, error) {
	m.record("UpdateParticipant")
	if m.UpdateParticipantFn != nil {
		return m.UpdateParticipantFn(ctx, sessionID, participantID, name)
	}
	return &models.Participant{ID: participantID, Name: name}, nil
}

func (m *MockService) CreateSession(ctx context.Context) (*models.SessionHandle, error) {
	m.record("CreateSession")
	if m.CreateSessionFn != nil {
		return m.CreateSessionFn(ctx)
	}
	return &models.SessionHandle{SessionID: "ab12cd34", RedirectURL: "/ab12cd34"}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error { return nil }
