package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mapgenworks/mapgenctl/internal/joblog"
	"github.com/mapgenworks/mapgenctl/internal/logtail"
	"github.com/mapgenworks/mapgenctl/internal/pipeline"
)

const (
	// statusInterval paces the filesystem completion poll.
	statusInterval = time.Second
	// tailLines is how much of the job log the progress view shows.
	tailLines = 8
)

// statusMsg carries one completion poll plus the job log tail.
type statusMsg struct {
	completion map[string]bool
	tail       []string
}

// ProgressOptions configure the pipeline progress view.
type ProgressOptions struct {
	JobID        string
	PipelineRoot string
	Until        string
	JobLog       *joblog.Logger
	Theme        Theme
}

// Progress is the run command's TUI: a per-stage status list with a spinner
// on the first incomplete stage, plus the tail of the job's orchestration
// log. It polls stage outboxes once a second and exits on any key once the
// target stage has completed.
type Progress struct {
	jobID        string
	pipelineRoot string
	until        string
	jobLog       *joblog.Logger

	spin       spinner.Model
	completion map[string]bool
	tail       []string
	finished   bool

	keys   keyMap
	styles Styles
	width  int
}

// NewProgress creates the progress model. Until must be a known stage.
func NewProgress(opts ProgressOptions) Progress {
	styles := opts.Theme.Styles()
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(styles.Accent),
	)
	return Progress{
		jobID:        opts.JobID,
		pipelineRoot: opts.PipelineRoot,
		until:        opts.Until,
		jobLog:       opts.JobLog,
		spin:         sp,
		completion:   make(map[string]bool, len(pipeline.Stages)),
		keys:         defaultKeyMap(),
		styles:       styles,
		width:        80,
	}
}

// Finished reports whether the target stage completed before exit.
func (p Progress) Finished() bool {
	return p.finished
}

// Init starts the spinner and the first status poll.
func (p Progress) Init() tea.Cmd {
	return tea.Batch(p.spin.Tick, p.pollStatus())
}

// Update handles keys, spinner ticks, and status polls.
func (p Progress) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.finished || key.Matches(msg, p.keys.Quit) {
			return p, tea.Quit
		}

	case tea.WindowSizeMsg:
		p.width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spin, cmd = p.spin.Update(msg)
		return p, cmd

	case statusMsg:
		p.logTransitions(msg.completion)
		p.completion = msg.completion
		p.tail = msg.tail
		if p.completion[p.until] {
			p.finished = true
			return p, nil
		}
		return p, tea.Tick(statusInterval, func(time.Time) tea.Msg { return p.poll() })
	}
	return p, nil
}

// logTransitions records each stage's first observed completion in the job
// log, once per stage.
func (p *Progress) logTransitions(next map[string]bool) {
	if p.jobLog == nil {
		return
	}
	for _, stage := range pipeline.Stages {
		if next[stage] && !p.completion[stage] {
			p.jobLog.Info(stage, "stage completed")
		}
	}
}

func (p Progress) pollStatus() tea.Cmd {
	return func() tea.Msg { return p.poll() }
}

func (p Progress) poll() tea.Msg {
	msg := statusMsg{completion: pipeline.Completion(p.pipelineRoot, p.jobID)}
	if p.jobLog != nil {
		// Tail errors leave the previous lines on screen.
		if lines, err := logtail.Tail(p.jobLog.Path(), tailLines); err == nil {
			msg.tail = lines
		} else {
			msg.tail = p.tail
		}
	}
	return msg
}

// View renders the stage list and the job log tail.
func (p Progress) View() string {
	var b strings.Builder

	b.WriteString(p.styles.Header.Width(p.width).Render(
		truncate("mapgenctl run: job "+p.jobID, p.width-2)))
	b.WriteString("\n\n")

	active := p.activeStage()
	for _, stage := range pipeline.Stages {
		switch {
		case p.completion[stage]:
			b.WriteString(fmt.Sprintf("  %s %s\n",
				p.styles.Success.Render("✓"), p.styles.Text.Render(stage)))
		case stage == active && !p.finished:
			b.WriteString(fmt.Sprintf("  %s %s\n",
				p.spin.View(), p.styles.Accent.Render(stage)))
		default:
			b.WriteString(fmt.Sprintf("  %s %s\n",
				p.styles.FaintText.Render("·"), p.styles.FaintText.Render(stage)))
		}
		if stage == p.until {
			break
		}
	}

	if len(p.tail) > 0 {
		b.WriteString("\n")
		b.WriteString(p.styles.MutedText.Render("Recent log:"))
		b.WriteString("\n")
		for _, line := range p.tail {
			b.WriteString("  " + p.styles.FaintText.Render(truncate(line, p.width-2)) + "\n")
		}
	}

	b.WriteString("\n")
	if p.finished {
		b.WriteString(p.styles.Footer.Width(p.width).Render(
			fmt.Sprintf("Pipeline complete through %s. Press any key to exit.", p.until)))
	} else {
		b.WriteString(p.styles.Footer.Width(p.width).Render("Press q or Ctrl+C to abort"))
	}
	return b.String()
}

// activeStage returns the first incomplete stage, in pipeline order.
func (p Progress) activeStage() string {
	for _, stage := range pipeline.Stages {
		if !p.completion[stage] {
			return stage
		}
	}
	return ""
}
