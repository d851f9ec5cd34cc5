package formatter

import (
	"strings"
	"testing"

	"github.com/desertthunder/jbx/internal/models"
)

func sampleTracks(n int) []models.Track {
	tracks := make([]models.Track, n)
	for i := range tracks {
		tracks[i] = models.Track{
			URI:     "spotify:track:" + string(rune('a'+i)),
			Name:    "Track " + string(rune('A'+i)),
			Artists: "Artist",
		}
	}
	return tracks
}

func TestSnapshotToText(t *testing.T) {
	t.Run("renders all sections", func(t *testing.T) {
		snapshot := &models.QueueSnapshot{
			CurrentTrack:     &models.Track{Name: "Now Song", Artists: "Now Artist"},
			UserQueue:        sampleTracks(2),
			RadioQueue:       sampleTracks(3),
			ParticipantCount: 4,
		}

		text := string(SnapshotToText(snapshot))
		for _, want := range []string{"Now Playing", "Now Song by Now Artist", "In Queue", "1. Track A by Artist", "2. Track B by Artist", "Up Next", "Participants: 4"} {
			if !strings.Contains(text, want) {
				t.Errorf("expected output to contain %q, got:\n%s", want, text)
			}
		}
	})

	t.Run("caps the radio preview", func(t *testing.T) {
		snapshot := &models.QueueSnapshot{RadioQueue: sampleTracks(8)}

		text := string(SnapshotToText(snapshot))
		if !strings.Contains(text, "+ 3 more tracks") {
			t.Errorf("expected overflow line, got:\n%s", text)
		}
		if strings.Contains(text, "Track F") {
			t.Errorf("expected sixth track hidden, got:\n%s", text)
		}
	})

	t.Run("empty queue", func(t *testing.T) {
		text := string(SnapshotToText(&models.QueueSnapshot{}))
		if !strings.Contains(text, "No track playing") || !strings.Contains(text, "No tracks in queue") {
			t.Errorf("unexpected empty rendering:\n%s", text)
		}
	})
}

func TestTracksToCSV(t *testing.T) {
	data, err := TracksToCSV([]models.Track{
		{URI: "spotify:track:1", Name: "Song, With Comma", Artists: "Artist", AlbumArt: "http://img"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one record, got %d lines", len(lines))
	}
	if lines[0] != "URI,Name,Artists,AlbumArt" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Song, With Comma"`) {
		t.Errorf("expected quoted field, got %q", lines[1])
	}
}

func TestTracksToText(t *testing.T) {
	t.Run("numbers results", func(t *testing.T) {
		text := string(TracksToText(sampleTracks(2)))
		if !strings.Contains(text, "1. Artist - Track A") || !strings.Contains(text, "2. Artist - Track B") {
			t.Errorf("unexpected rendering:\n%s", text)
		}
	})

	t.Run("empty results", func(t *testing.T) {
		if text := string(TracksToText(nil)); !strings.Contains(text, "No results found") {
			t.Errorf("unexpected rendering: %q", text)
		}
	})
}

func TestTruncateText(t *testing.T) {
	cases := []struct {
		name      string
		text      string
		maxLength int
		want      string
	}{
		{"short text unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long text truncated", "hello world", 8, "hello..."},
		{"multibyte runes", "héllo wörld", 8, "héllo..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateText(tc.text, tc.maxLength); got != tc.want {
				t.Errorf("TruncateText(%q, %d) = %q, want %q", tc.text, tc.maxLength, got, tc.want)
			}
		})
	}
}
