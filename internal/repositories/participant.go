package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/shared"
)

// ParticipantRepository persists the (session id -> participant) mapping.
//
// session_id is the primary key, so a rejoin from another device
// overwrites the row: last writer wins.
type ParticipantRepository struct {
	db *sql.DB
}

// NewParticipantRepository creates a repository backed by the given database.
func NewParticipantRepository(db *sql.DB) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Get retrieves the stored participant identity for a session.
// Returns [shared.ErrParticipantNotFound] when no identity exists.
func (r *ParticipantRepository) Get(sessionID string) (*models.Participant, error) {
	var p models.Participant
	var icon, color sql.NullString

	err := r.db.QueryRow(
		"SELECT participant_id, name, icon, color FROM participants WHERE session_id = ?",
		sessionID,
	).Scan(&p.ID, &p.Name, &icon, &color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", shared.ErrParticipantNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query participant: %w", err)
	}

	p.Icon = icon.String
	p.Color = color.String
	return &p, nil
}

// Save stores the participant identity for a session, replacing any
// existing row for the same session id.
func (r *ParticipantRepository) Save(sessionID string, p *models.Participant) error {
	if p == nil || p.ID == "" {
		return fmt.Errorf("%w: participant id is required", shared.ErrInvalidInput)
	}

	_, err := r.db.Exec(`
		INSERT INTO participants (session_id, participant_id, name, icon, color)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			participant_id = excluded.participant_id,
			name = excluded.name,
			icon = excluded.icon,
			color = excluded.color,
			updated_at = CURRENT_TIMESTAMP`,
		sessionID, p.ID, p.Name, p.Icon, p.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}
	return nil
}

// Rename updates the display name of the stored identity for a session.
func (r *ParticipantRepository) Rename(sessionID, name string) error {
	result, err := r.db.Exec(
		"UPDATE participants SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE session_id = ?",
		name, sessionID,
	)
	if err != nil {
		return fmt.Errorf("failed to rename participant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rename result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: session %s", shared.ErrParticipantNotFound, sessionID)
	}
	return nil
}

// Delete removes the stored identity for a session.
func (r *ParticipantRepository) Delete(sessionID string) error {
	if _, err := r.db.Exec("DELETE FROM participants WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return nil
}
