package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mapgenworks/mapgenctl/internal/logstream"
)

const (
	// frameInterval targets ~20 redraws per second.
	frameInterval = 50 * time.Millisecond
	// transcriptLines bounds the rolling transcript.
	transcriptLines = 500
)

// frameMsg drives the viewer's fixed render cadence.
type frameMsg time.Time

// ViewerOptions configure the live log viewer.
type ViewerOptions struct {
	JobID   string
	Entries <-chan logstream.Entry
	Merger  *logstream.Merger
	Theme   Theme
}

// Viewer is the live log view: one scrolling transcript of merged entries
// for a single job, framed by a header and an exit-hint footer.
//
// The viewer owns the merger and transcript exclusively; the entry channel
// is its only connection to the background poller. Each frame drains the
// channel without blocking, so the view keeps redrawing and answering keys
// even when no source has produced anything yet.
type Viewer struct {
	jobID      string
	entries    <-chan logstream.Entry
	merger     *logstream.Merger
	transcript *logstream.Transcript

	keys   keyMap
	styles Styles
	width  int
	height int
	ready  bool
}

// NewViewer creates the log viewer model.
func NewViewer(opts ViewerOptions) Viewer {
	merger := opts.Merger
	if merger == nil {
		merger = logstream.NewMerger(0, 0)
	}
	return Viewer{
		jobID:      opts.JobID,
		entries:    opts.Entries,
		merger:     merger,
		transcript: logstream.NewTranscript(transcriptLines),
		keys:       defaultKeyMap(),
		styles:     opts.Theme.Styles(),
	}
}

// Init starts the frame ticker.
func (v Viewer) Init() tea.Cmd {
	return tea.Batch(frameTick(), tea.SetWindowTitle("mapgenctl"))
}

// Update handles keys, resizes, and frame ticks.
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, v.keys.Quit) {
			return v, tea.Quit
		}

	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true

	case frameMsg:
		v.collect()
		return v, frameTick()
	}
	return v, nil
}

// collect moves every currently pending entry from the channel into the
// merger, then appends whatever the merger releases to the transcript.
// Both steps are non-blocking; an empty channel is a normal frame.
func (v *Viewer) collect() {
	for {
		select {
		case e := <-v.entries:
			v.merger.Ingest(e)
		default:
			for _, e := range v.merger.Drain() {
				v.transcript.Append(formatEntry(e))
			}
			return
		}
	}
}

// View renders header, transcript tail, and footer.
func (v Viewer) View() string {
	if !v.ready {
		return ""
	}

	header := v.styles.Header.Width(v.width).Render(
		truncate("mapgenctl logs: job "+v.jobID, v.width-2))
	footer := v.styles.Footer.Width(v.width).Render("Press q or Ctrl+C to exit")

	body := v.height - 2
	if body < 0 {
		body = 0
	}

	lines := v.transcript.Last(body)
	rendered := make([]string, 0, body)
	if len(lines) == 0 {
		rendered = append(rendered, v.styles.MutedText.Render("Waiting for log entries..."))
	}
	for _, line := range lines {
		rendered = append(rendered, colorizeLine(truncate(line, v.width), v.styles))
	}
	for len(rendered) < body {
		rendered = append(rendered, "")
	}

	return header + "\n" + strings.Join(rendered, "\n") + "\n" + footer
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
