// Package ui implements the terminal views.
//
// Two Bubble Tea models live here: Viewer, the live merged-log transcript
// behind the logs command, and Progress, the per-stage pipeline status
// behind run --tui. Both share one theme, one key map, and one line format
// so the two surfaces read alike.
package ui
