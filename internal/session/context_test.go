package session

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/desertthunder/jbx/internal/shared"
	tu "github.com/desertthunder/jbx/internal/testing"
)

func TestDetectSessionID(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"bare code", "ab12cd34", "ab12cd34"},
		{"bare code with whitespace", "  ab12cd34  ", "ab12cd34"},
		{"shareable link", "http://jukebox.local/ab12cd34", "ab12cd34"},
		{"shareable link with trailing path", "http://jukebox.local/ab12cd34/queue", "ab12cd34"},
		{"legacy query parameter", "http://jukebox.local/?session_id=zz99yy88", "zz99yy88"},
		{"path segment wins over query", "http://jukebox.local/ab12cd34?session_id=zz99yy88", "ab12cd34"},
		{"empty input", "", ""},
		{"too short", "ab12", ""},
		{"too long", "ab12cd345", ""},
		{"non-alphanumeric", "ab12cd3!", ""},
		{"plain url without code", "http://jukebox.local/about", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectSessionID(tc.raw); got != tc.want {
				t.Errorf("DetectSessionID(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestEstablish(t *testing.T) {
	ctx := context.Background()
	logger := shared.NewLogger(io.Discard)

	t.Run("returns an immutable session context", func(t *testing.T) {
		svc := &tu.MockService{
			SessionTokenFn: func(ctx context.Context, sessionID string) (string, error) {
				if sessionID != "ab12cd34" {
					t.Errorf("unexpected session id %s", sessionID)
				}
				return "tok-secret", nil
			},
		}

		sctx, err := Establish(ctx, svc, "ab12cd34", logger)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sctx.ID != "ab12cd34" || sctx.Token != "tok-secret" {
			t.Errorf("unexpected context: %+v", sctx)
		}
	})

	t.Run("token fetch failure is a session init error", func(t *testing.T) {
		svc := &tu.MockService{
			SessionTokenFn: func(ctx context.Context, sessionID string) (string, error) {
				return "", errors.New("boom")
			},
		}

		sctx, err := Establish(ctx, svc, "ab12cd34", logger)
		if !errors.Is(err, shared.ErrSessionInit) {
			t.Errorf("expected ErrSessionInit, got %v", err)
		}
		if sctx != nil {
			t.Error("no context may be returned on failure; global fallback is forbidden")
		}
	})

	t.Run("empty id never establishes", func(t *testing.T) {
		svc := &tu.MockService{}
		if _, err := Establish(ctx, svc, "", logger); !errors.Is(err, shared.ErrSessionInit) {
			t.Errorf("expected ErrSessionInit, got %v", err)
		}
		if calls := svc.Calls(); len(calls) != 0 {
			t.Errorf("expected no network calls, got %v", calls)
		}
	})
}
