package ui

import (
	"github.com/desertthunder/jbx/internal/models"
	"github.com/desertthunder/jbx/internal/tasks"
)

// snapshotMsg carries an applied queue snapshot from the sync client.
type snapshotMsg models.QueueSnapshot

// noticeMsg carries a transient outcome notice from the enqueue gateway
// or an admin action.
type noticeMsg tasks.Notice

// resultsMsg carries search results for the typed query.
type resultsMsg struct {
	query  string
	tracks []models.Track
	err    error
}

// adminCheckedMsg reports the outcome of an admin keyword check.
type adminCheckedMsg struct {
	activated bool
	err       error
}
