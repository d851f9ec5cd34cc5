// package formatter renders queue snapshots and track lists for terminal
// output (plain text, CSV, JSON).
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/jbx/internal/models"
)

// radioPreview caps how many radio-queue tracks are rendered before
// collapsing the rest into a "+N more" line.
const radioPreview = 5

// SnapshotToText renders a queue snapshot as plain text: Now Playing,
// the user queue in order, then up to five upcoming radio tracks.
func SnapshotToText(snapshot *models.QueueSnapshot) []byte {
	var buf bytes.Buffer

	buf.WriteString("Now Playing\n")
	if snapshot.CurrentTrack != nil {
		buf.WriteString(fmt.Sprintf("  %s by %s\n", snapshot.CurrentTrack.Name, snapshot.CurrentTrack.Artists))
	} else {
		buf.WriteString("  No track playing\n")
	}

	if len(snapshot.UserQueue) > 0 {
		buf.WriteString("\nIn Queue\n")
		for i, track := range snapshot.UserQueue {
			buf.WriteString(fmt.Sprintf("  %d. %s by %s\n", i+1, track.Name, track.Artists))
		}
	}

	if len(snapshot.RadioQueue) > 0 {
		buf.WriteString("\nUp Next\n")
		preview := snapshot.RadioQueue
		if len(preview) > radioPreview {
			preview = preview[:radioPreview]
		}
		for _, track := range preview {
			buf.WriteString(fmt.Sprintf("  %s by %s\n", track.Name, track.Artists))
		}
		if extra := len(snapshot.RadioQueue) - radioPreview; extra > 0 {
			buf.WriteString(fmt.Sprintf("  + %d more tracks\n", extra))
		}
	}

	if len(snapshot.UserQueue) == 0 && len(snapshot.RadioQueue) == 0 {
		buf.WriteString("\nNo tracks in queue\n")
	}

	if snapshot.ParticipantCount > 0 {
		buf.WriteString(fmt.Sprintf("\nParticipants: %d\n", snapshot.ParticipantCount))
	}

	return buf.Bytes()
}

// TracksToCSV converts tracks to CSV with columns: URI, Name, Artists, AlbumArt.
func TracksToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"URI", "Name", "Artists", "AlbumArt"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{track.URI, track.Name, track.Artists, track.AlbumArt}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// TracksToText renders search results as a numbered list.
func TracksToText(tracks []models.Track) []byte {
	var buf bytes.Buffer

	if len(tracks) == 0 {
		buf.WriteString("No results found\n")
		return buf.Bytes()
	}

	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.Artists, track.Name))
	}

	return buf.Bytes()
}

// MarshalJSON marshals v to JSON, optionally indented.
func MarshalJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// TruncateText shortens text to maxLength runes, appending an ellipsis.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength-3]) + "..."
}
