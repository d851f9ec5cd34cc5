package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/session"
	"github.com/desertthunder/jbx/internal/shared"
	"github.com/desertthunder/jbx/internal/tasks"
	tu "github.com/desertthunder/jbx/internal/testing"
)

func newTestModel(svc *tu.MockService) *Model {
	logger := shared.NewLogger(nil)
	admin := session.NewAdminState(svc, logger)
	return NewModel(context.Background(), svc, admin, func() string { return "" }, shared.DefaultConfig(), logger)
}

func TestModelRefreshWiring(t *testing.T) {
	t.Run("failed refresh surfaces one error notice", func(t *testing.T) {
		svc := &tu.MockService{
			CurrentQueueFn: func(ctx context.Context) (*models.QueueSnapshot, error) {
				return nil, errors.New("connection refused")
			},
		}
		m := newTestModel(svc)

		m.syncer.Refresh(context.Background())

		select {
		case notice := <-m.noticeChan:
			if notice.Kind != tasks.NoticeError {
				t.Errorf("expected error notice, got kind %v", notice.Kind)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("expected a notice after a failed refresh")
		}

		select {
		case notice := <-m.noticeChan:
			t.Errorf("unexpected second notice: %+v", notice)
		default:
		}
	})

	t.Run("applied snapshot reaches the snapshot channel", func(t *testing.T) {
		svc := &tu.MockService{
			CurrentQueueFn: func(ctx context.Context) (*models.QueueSnapshot, error) {
				return &models.QueueSnapshot{CurrentTrack: &models.Track{Name: "First"}}, nil
			},
		}
		m := newTestModel(svc)

		m.syncer.Refresh(context.Background())

		select {
		case s := <-m.snapshotChan:
			if s.CurrentTrack == nil || s.CurrentTrack.Name != "First" {
				t.Errorf("unexpected snapshot: %+v", s)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("expected a snapshot after a successful refresh")
		}

		select {
		case notice := <-m.noticeChan:
			t.Errorf("unexpected notice on success: %+v", notice)
		default:
		}
	})
}
