package app

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mapgenworks/mapgenctl/internal/joblog"
	"github.com/mapgenworks/mapgenctl/internal/pipeline"
	"github.com/mapgenworks/mapgenctl/internal/ui"
)

// statusPollInterval paces the plain-text progress loop.
const statusPollInterval = time.Second

// RunOptions configure the run command.
type RunOptions struct {
	Width  int
	Height int
	Until  string // terminal stage; must be a known stage
	TUI    bool
	Out    io.Writer // plain progress output
}

// SubmitJob writes a job descriptor into the pipeline and records the
// submission in the job's orchestration log. It returns the new job id.
func (s *Session) SubmitJob(width, height int) (string, error) {
	jobID, err := pipeline.Submit(s.Config.PipelineRoot, width, height)
	if err != nil {
		return "", err
	}

	jl, err := joblog.New(s.Config.LogRoot, jobID)
	if err != nil {
		return jobID, err
	}
	jl.Info("mapgenctl", fmt.Sprintf("job submitted (%dx%d cells)", width, height))

	s.Logger.Info().Str("job_id", jobID).Int("width", width).Int("height", height).
		Msg("job submitted")
	return jobID, nil
}

// RunPipeline submits a job and follows its progress until the target stage
// completes, the context is cancelled, or the user quits the TUI. It
// returns the job id even on error so callers can report it.
func (s *Session) RunPipeline(ctx context.Context, opts RunOptions) (string, error) {
	if !pipeline.IsStage(opts.Until) {
		return "", fmt.Errorf("unknown pipeline stage %q", opts.Until)
	}

	jobID, err := s.SubmitJob(opts.Width, opts.Height)
	if err != nil {
		return jobID, err
	}

	jl, err := joblog.New(s.Config.LogRoot, jobID)
	if err != nil {
		return jobID, err
	}

	if opts.TUI {
		return jobID, s.runProgressView(ctx, jobID, opts.Until, jl)
	}
	return jobID, s.runProgressText(ctx, jobID, opts.Until, jl, opts.Out)
}

func (s *Session) runProgressView(ctx context.Context, jobID, until string, jl *joblog.Logger) error {
	model := ui.NewProgress(ui.ProgressOptions{
		JobID:        jobID,
		PipelineRoot: s.Config.PipelineRoot,
		Until:        until,
		JobLog:       jl,
		Theme:        s.theme,
	})

	final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("progress view: %w", err)
	}
	if p, ok := final.(ui.Progress); ok && !p.Finished() {
		jl.Warn("mapgenctl", "run aborted before completion")
	}
	return nil
}

// runProgressText is the non-TUI progress loop: poll completion once a
// second, print each stage transition, stop at the target stage.
func (s *Session) runProgressText(ctx context.Context, jobID, until string, jl *joblog.Logger, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "[mapgenctl] Job submitted: %s\n", jobID)

	seen := make(map[string]bool, len(pipeline.Stages))
	ticker := time.NewTicker(statusPollInterval)
	defer ticker.Stop()

	for {
		done := pipeline.Completion(s.Config.PipelineRoot, jobID)
		for _, stage := range pipeline.Stages {
			if done[stage] && !seen[stage] {
				seen[stage] = true
				jl.Info(stage, "stage completed")
				fmt.Fprintf(out, "[mapgenctl] Stage complete: %s\n", stage)
			}
		}
		if done[until] {
			fmt.Fprintf(out, "[mapgenctl] Pipeline complete through %s\n", until)
			return nil
		}

		select {
		case <-ctx.Done():
			jl.Warn("mapgenctl", "run aborted before completion")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
