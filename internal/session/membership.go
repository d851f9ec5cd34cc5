package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/services"
	"github.com/desertthunder/jbx/internal/shared"
)

// ParticipantStore is the persistence surface Membership needs.
// Implemented by repositories.ParticipantRepository.
type ParticipantStore interface {
	Get(sessionID string) (*models.Participant, error)
	Save(sessionID string, p *models.Participant) error
	Rename(sessionID, name string) error
}

// Membership manages the persisted participant identity for sessions.
type Membership struct {
	svc    services.Service
	store  ParticipantStore
	logger *log.Logger
}

// NewMembership creates a Membership over the given service and store.
func NewMembership(svc services.Service, store ParticipantStore, logger *log.Logger) *Membership {
	return &Membership{svc: svc, store: store, logger: logger}
}

// Ensure returns the participant identity for a session, joining if none
// is stored yet. The second return value reports whether a join happened
// now; callers show the one-time "joined as X" notice only in that case.
func (m *Membership) Ensure(ctx context.Context, sessionID string) (*models.Participant, bool, error) {
	existing, err := m.store.Get(sessionID)
	if err == nil {
		m.logger.Debug("reusing stored participant", "session", sessionID, "participant", existing.ID)
		return existing, false, nil
	}
	if !errors.Is(err, shared.ErrParticipantNotFound) {
		return nil, false, err
	}

	joined, err := m.svc.JoinSession(ctx, sessionID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to join session %s: %w", sessionID, err)
	}

	if err := m.store.Save(sessionID, &joined.Participant); err != nil {
		return nil, false, err
	}

	m.logger.Info("joined session", "session", sessionID, "participant", joined.Participant.Name)
	return &joined.Participant, true, nil
}

// Rename updates the participant's display name on the server, then in
// the local store.
func (m *Membership) Rename(ctx context.Context, sessionID, name string) (*models.Participant, error) {
	stored, err := m.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	updated, err := m.svc.UpdateParticipant(ctx, sessionID, stored.ID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to rename participant: %w", err)
	}

	if err := m.store.Rename(sessionID, updated.Name); err != nil {
		return nil, err
	}

	return updated, nil
}

// Current returns the stored identity for a session without joining.
func (m *Membership) Current(sessionID string) (*models.Participant, error) {
	return m.store.Get(sessionID)
}
