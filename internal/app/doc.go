// Package app is the composition root for mapgenctl commands.
//
// # Overview
//
// A Session resolves configuration and opens the diagnostics logger once;
// each command then runs through a Session method. The two long-running
// surfaces are ViewLogs (the live log viewer) and RunPipeline (submit a job
// and follow its progress).
//
// # Log viewer data flow
//
//	StartPoller goroutine (250ms)          viewer frame loop (50ms)
//	┌─────────────────────────────┐        ┌──────────────────────────┐
//	│ manager.Tick()              │        │ drain channel (nonblock) │
//	│  ├─> discover new sources   │ chan   │  └─> merger.Ingest()     │
//	│  └─> poll tails, parse      ├───────>│ merger.Drain()           │
//	│      send (drop when full)  │ (2000) │  └─> transcript.Append() │
//	└─────────────────────────────┘        └──────────────────────────┘
//
// One producer, one consumer. The channel is bounded; under sustained
// overload the poller drops newest entries and counts them, and the
// diagnostics log records the drops.
//
// # Shutdown
//
// ViewLogs cancels the poller after the TUI exits and waits for it to
// finish. The poller runs one final tick on cancellation, so lines written
// during shutdown are still collected.
package app
