package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/desertthunder/jbx/internal/shared"
	tu "github.com/desertthunder/jbx/internal/testing"
)

// memoryStore is an in-memory ParticipantStore for tests.
type memoryStore struct {
	participants map[string]*models.Participant
}

func newMemoryStore() *memoryStore {
	return &memoryStore{participants: map[string]*models.Participant{}}
}

func (s *memoryStore) Get(sessionID string) (*models.Participant, error) {
	p, ok := s.participants[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: session %s", shared.ErrParticipantNotFound, sessionID)
	}
	copied := *p
	return &copied, nil
}

func (s *memoryStore) Save(sessionID string, p *models.Participant) error {
	copied := *p
	s.participants[sessionID] = &copied
	return nil
}

func (s *memoryStore) Rename(sessionID, name string) error {
	p, ok := s.participants[sessionID]
	if !ok {
		return fmt.Errorf("%w: session %s", shared.ErrParticipantNotFound, sessionID)
	}
	p.Name = name
	return nil
}

func TestMembership(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(io.Discard)

	joinCounting := func() (*tu.MockService, *int) {
		joins := 0
		svc := &tu.MockService{}
		svc.JoinSessionFn = func(ctx context.Context, sessionID string) (*services.JoinResult, error) {
			joins++
			return &services.JoinResult{
				Participant:      models.Participant{ID: "p-1", Name: "Blue Fox", Icon: "fox", Color: "#0000ff"},
				ParticipantCount: 1,
			}, nil
		}
		return svc, &joins
	}

	t.Run("first ensure joins and persists", func(t *testing.T) {
		svc, joins := joinCounting()
		store := newMemoryStore()
		membership := NewMembership(svc, store, logger)

		participant, joinedNow, err := membership.Ensure(ctx, "ab12cd34")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !joinedNow {
			t.Error("expected first ensure to report a join")
		}
		if participant.ID != "p-1" || *joins != 1 {
			t.Errorf("unexpected participant %+v (joins=%d)", participant, *joins)
		}
		if stored, err := store.Get("ab12cd34"); err != nil || stored.ID != "p-1" {
			t.Errorf("expected persisted identity, got %+v %v", stored, err)
		}
	})

	t.Run("second ensure reuses the identity silently", func(t *testing.T) {
		svc, joins := joinCounting()
		store := newMemoryStore()
		membership := NewMembership(svc, store, logger)

		membership.Ensure(ctx, "ab12cd34")
		participant, joinedNow, err := membership.Ensure(ctx, "ab12cd34")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if joinedNow {
			t.Error("reuse must not report a join")
		}
		if participant.ID != "p-1" {
			t.Errorf("expected stored identity, got %+v", participant)
		}
		if *joins != 1 {
			t.Errorf("expected exactly one join call, got %d", *joins)
		}
	})

	t.Run("identities are keyed per session", func(t *testing.T) {
		svc, joins := joinCounting()
		store := newMemoryStore()
		membership := NewMembership(svc, store, logger)

		membership.Ensure(ctx, "ab12cd34")
		membership.Ensure(ctx, "zz99yy88")
		if *joins != 2 {
			t.Errorf("expected a join per session, got %d", *joins)
		}
	})

	t.Run("join failure surfaces", func(t *testing.T) {
		svc := &tu.MockService{
			JoinSessionFn: func(ctx context.Context, sessionID string) (*services.JoinResult, error) {
				return nil, errors.New("session full")
			},
		}
		membership := NewMembership(svc, newMemoryStore(), logger)

		if _, _, err := membership.Ensure(ctx, "ab12cd34"); err == nil {
			t.Error("expected join failure to surface")
		}
	})

	t.Run("rename updates server then store", func(t *testing.T) {
		svc, _ := joinCounting()
		svc.UpdateParticipantFn = func(ctx context.Context, sessionID, participantID, name string) (*models.Participant, error) {
			if participantID != "p-1" {
				t.Errorf("expected stored participant id, got %s", participantID)
			}
			return &models.Participant{ID: participantID, Name: name}, nil
		}
		store := newMemoryStore()
		membership := NewMembership(svc, store, logger)

		membership.Ensure(ctx, "ab12cd34")
		renamed, err := membership.Rename(ctx, "ab12cd34", "Red Panda")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if renamed.Name != "Red Panda" {
			t.Errorf("unexpected name %q", renamed.Name)
		}
		if stored, _ := store.Get("ab12cd34"); stored.Name != "Red Panda" {
			t.Errorf("expected store updated, got %q", stored.Name)
		}
	})

	t.Run("rename without a stored identity fails", func(t *testing.T) {
		svc, _ := joinCounting()
		membership := NewMembership(svc, newMemoryStore(), logger)

		if _, err := membership.Rename(ctx, "ab12cd34", "Red Panda"); !errors.Is(err, shared.ErrParticipantNotFound) {
			t.Errorf("expected ErrParticipantNotFound, got %v", err)
		}
	})
}
