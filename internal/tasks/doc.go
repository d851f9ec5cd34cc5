// package tasks implements the queue synchronization core: the polling
// [SyncClient] that keeps a live queue snapshot, and the mutation
// [Gateway] that coalesces rapid-fire enqueue requests.
//
// Both emit [Notice] values via callbacks for non-blocking status
// reporting to the CLI/TUI layers. Timers run on an injected
// [clockwork.Clock] so tests drive time directly.
package tasks
