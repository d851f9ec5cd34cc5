package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/jbx/internal/formatter"
	"github.com/desertthunder/jbx/internal/models"
)

// itemWidth keeps long track names and artist lists on one row each.
const itemWidth = 60

var _ list.Item = trackItem{}

// trackItem wraps [models.Track] to implement [list.Item].
type trackItem struct {
	track models.Track
}

func (i trackItem) FilterValue() string { return i.track.Name }
func (i trackItem) Title() string       { return formatter.TruncateText(i.track.Name, itemWidth) }
func (i trackItem) Description() string { return formatter.TruncateText(i.track.Artists, itemWidth) }
