package app

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mapgenworks/mapgenctl/internal/config"
	"github.com/mapgenworks/mapgenctl/internal/diag"
	"github.com/mapgenworks/mapgenctl/internal/logstream"
	"github.com/mapgenworks/mapgenctl/internal/paths"
	"github.com/mapgenworks/mapgenctl/internal/prefs"
	"github.com/mapgenworks/mapgenctl/internal/ui"
)

// entryBuffer is the capacity of the channel between the poller and the
// viewer. When the viewer falls behind by more than this, newest entries
// are dropped.
const entryBuffer = 2000

// Options configure a mapgenctl session.
type Options struct {
	ConfigPath string // empty uses ~/.config/mapgenctl/config.toml
	PrefsPath  string // empty uses ~/.config/mapgenctl/prefs.toml
	Debug      bool   // forces the diagnostics log on
}

// Session holds the resolved configuration and diagnostics logger shared
// by every command. Close releases the diagnostics log file.
type Session struct {
	Config   config.Config
	Logger   zerolog.Logger
	theme    ui.Theme
	closeLog func()
}

// NewSession loads configuration, user preferences, and the diagnostics
// logger.
func NewSession(opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	logger, closeLog, err := diag.New(cfg.LogRoot, cfg.Debug || opts.Debug)
	if err != nil {
		return nil, err
	}

	return &Session{
		Config:   cfg,
		Logger:   logger,
		theme:    ui.ThemeByName(userPrefs.Theme),
		closeLog: closeLog,
	}, nil
}

// Close flushes and closes session resources.
func (s *Session) Close() {
	if s.closeLog != nil {
		s.closeLog()
	}
}

// ViewLogs runs the live log viewer for one job until the user quits or the
// context is cancelled. The job's log directory does not need to exist yet;
// sources are discovered as their files appear.
func (s *Session) ViewLogs(ctx context.Context, jobID string) error {
	jobDir := paths.JobLogDir(s.Config.LogRoot, jobID)
	s.Logger.Info().Str("job_id", jobID).Str("dir", jobDir).Msg("log viewer starting")

	entries := make(chan logstream.Entry, entryBuffer)
	manager := logstream.NewTailManager(jobID, jobDir, entries, s.Logger)

	pollCtx, cancel := context.WithCancel(ctx)
	done := StartPoller(pollCtx, manager, defaultPollInterval)

	model := ui.NewViewer(ui.ViewerOptions{
		JobID:   jobID,
		Entries: entries,
		Theme:   s.theme,
	})

	_, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stdout),
	).Run()

	// Let the poller finish an in-flight tick, then wait for it to stop.
	cancel()
	<-done

	s.Logger.Info().
		Str("job_id", jobID).
		Uint64("dropped", manager.Dropped()).
		Msg("log viewer stopped")
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("log viewer: %w", err)
	}
	return nil
}
