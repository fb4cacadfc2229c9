// Package logstream turns the log files of one pipeline job into a single
// time-ordered stream of display lines.
//
// # Overview
//
// Pipeline stages are independent processes that append to their own log
// files as they run: structured JSONL files per stage, plus one plain-text
// orchestration log. This package discovers those files, tails them
// incrementally, and merges their entries so the viewer can show one
// coherent timeline.
//
// # Components
//
//   - Entry: the normalized unit every other component exchanges.
//   - FileTail: incremental, fault-tolerant reader of one file. Survives
//     truncation, partial writes, and files that do not exist yet.
//   - TailManager: discovers a job's log files, owns one tail per source,
//     and forwards polled entries into a bounded channel.
//   - Merger: buffers entries briefly and releases them in timestamp order
//     under a configurable latency bound.
//   - Transcript: the bounded rolling buffer of formatted lines the
//     presenter renders from.
//
// # Concurrency model
//
// Exactly one background goroutine drives TailManager.Tick on a fixed
// interval and is the sole writer of tail state and sole producer into the
// output channel. The presenter loop is the sole consumer of that channel
// and the sole owner of the Merger and Transcript. The channel is the only
// shared structure, so nothing here takes a lock.
//
// Forwarding is lossy under pressure: a full channel drops the entry rather
// than stalling discovery. Polling is used instead of filesystem
// notification; a missed notification cannot happen, only staleness bounded
// by the poll interval.
package logstream
