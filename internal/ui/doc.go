// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for a shared jukebox session:
//  1. [QueueView] : Watch the live queue, refreshed on a fixed poll cadence
//  2. [SearchView] : Type a search query (or the admin keyword)
//  3. [ResultsView] : Browse search results and add tracks to the queue
//  4. [ConfirmClearView] : Confirm clearing the shared queue
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Queue snapshots and outcome notices flow through channels from the sync
// client and enqueue gateway, providing non-blocking updates while the
// poll loop runs in the background.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
