package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/shared"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestParticipantRepository(t *testing.T) {
	fox := &models.Participant{ID: "p-1", Name: "Blue Fox", Icon: "fox", Color: "#0000ff"}

	t.Run("get missing returns not found", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		_, err := repo.Get("ab12cd34")
		if !errors.Is(err, shared.ErrParticipantNotFound) {
			t.Errorf("expected ErrParticipantNotFound, got %v", err)
		}
	})

	t.Run("save then get round-trips", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		if err := repo.Save("ab12cd34", fox); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		got, err := repo.Get("ab12cd34")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != fox.ID || got.Name != fox.Name || got.Icon != fox.Icon || got.Color != fox.Color {
			t.Errorf("round-trip mismatch: %+v", got)
		}
	})

	t.Run("save requires a participant id", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		if err := repo.Save("ab12cd34", &models.Participant{Name: "nameless"}); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
		if err := repo.Save("ab12cd34", nil); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for nil, got %v", err)
		}
	})

	t.Run("saving again overwrites, last writer wins", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		if err := repo.Save("ab12cd34", fox); err != nil {
			t.Fatalf("save failed: %v", err)
		}
		panda := &models.Participant{ID: "p-2", Name: "Red Panda"}
		if err := repo.Save("ab12cd34", panda); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		got, err := repo.Get("ab12cd34")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.ID != "p-2" || got.Name != "Red Panda" {
			t.Errorf("expected the later identity, got %+v", got)
		}
	})

	t.Run("identities are independent per session", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		repo.Save("ab12cd34", fox)
		repo.Save("zz99yy88", &models.Participant{ID: "p-9", Name: "Green Owl"})

		first, _ := repo.Get("ab12cd34")
		second, _ := repo.Get("zz99yy88")
		if first.ID == second.ID {
			t.Error("expected distinct identities per session")
		}
	})

	t.Run("rename updates the stored name", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		repo.Save("ab12cd34", fox)
		if err := repo.Rename("ab12cd34", "Night Fox"); err != nil {
			t.Fatalf("rename failed: %v", err)
		}

		got, _ := repo.Get("ab12cd34")
		if got.Name != "Night Fox" {
			t.Errorf("expected renamed identity, got %q", got.Name)
		}
		if got.ID != fox.ID {
			t.Errorf("rename must not change the participant id, got %q", got.ID)
		}
	})

	t.Run("rename without a row returns not found", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		if err := repo.Rename("ab12cd34", "Night Fox"); !errors.Is(err, shared.ErrParticipantNotFound) {
			t.Errorf("expected ErrParticipantNotFound, got %v", err)
		}
	})

	t.Run("delete removes the identity", func(t *testing.T) {
		repo := NewParticipantRepository(setupTestDB(t))

		repo.Save("ab12cd34", fox)
		if err := repo.Delete("ab12cd34"); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, err := repo.Get("ab12cd34"); !errors.Is(err, shared.ErrParticipantNotFound) {
			t.Errorf("expected ErrParticipantNotFound after delete, got %v", err)
		}
	})
}
