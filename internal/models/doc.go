// package models defines the wire-level data model shared by the jukebox
// client: tracks, queue snapshots, participants and session handles.
//
// All types mirror the server's JSON shapes and are treated as immutable
// once decoded. A [QueueSnapshot] in particular is only ever replaced
// wholesale; nothing in this codebase merges or patches one.
package models
