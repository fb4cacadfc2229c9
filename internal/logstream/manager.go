package logstream

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

const (
	// orchestratorLog is the fixed-name plain-text log the run commands
	// write through joblog.
	orchestratorLog = "mapgenctl.log"
	// orchestratorSource labels entries from that log.
	orchestratorSource = "mapgenctl"
	// stageLogSuffix marks structured per-stage logs; stripping it yields
	// the source name.
	stageLogSuffix = ".log.jsonl"
)

// TailManager discovers the log files of one job and keeps them polled.
// It is driven from a single background goroutine and is the sole producer
// into the output channel; it never reads from it.
type TailManager struct {
	jobID  string
	jobDir string
	out    chan<- Entry
	logger zerolog.Logger

	tails   map[string]*FileTail
	order   []string
	dropped uint64
}

// NewTailManager creates a manager for jobID whose logs live in jobDir.
// Entries are forwarded to out; when out is full they are dropped so the
// poll schedule never stalls behind a slow consumer.
func NewTailManager(jobID, jobDir string, out chan<- Entry, logger zerolog.Logger) *TailManager {
	return &TailManager{
		jobID:  jobID,
		jobDir: jobDir,
		out:    out,
		logger: logger,
		tails:  make(map[string]*FileTail),
	}
}

// Tick discovers any newly created log files, polls every known tail, and
// forwards the resulting entries. Sources are never un-discovered: once a
// tail exists it is polled for the rest of the session.
func (m *TailManager) Tick() {
	m.discover()

	for _, source := range m.order {
		for _, entry := range m.tails[source].Poll() {
			select {
			case m.out <- entry:
			default:
				// Consumer is behind; bounded memory wins over
				// completeness here.
				m.dropped++
				if m.dropped%100 == 1 {
					m.logger.Warn().
						Uint64("dropped", m.dropped).
						Str("source", source).
						Msg("output channel full, dropping entries")
				}
			}
		}
	}
}

// Sources returns the discovered source names in first-seen order.
func (m *TailManager) Sources() []string {
	return append([]string(nil), m.order...)
}

// Dropped returns how many entries were discarded due to backpressure.
func (m *TailManager) Dropped() uint64 {
	return m.dropped
}

func (m *TailManager) discover() {
	// The orchestrator log has a fixed name and a plain-text format.
	plain := filepath.Join(m.jobDir, orchestratorLog)
	if _, ok := m.tails[orchestratorSource]; !ok {
		if _, err := os.Stat(plain); err == nil {
			m.track(orchestratorSource, NewPlainTextTail(plain, m.jobID, orchestratorSource))
		}
	}

	// Stage logs appear as stages start; derive the source from the
	// filename.
	matches, err := filepath.Glob(filepath.Join(m.jobDir, "*"+stageLogSuffix))
	if err != nil {
		return
	}
	for _, path := range matches {
		source := strings.TrimSuffix(filepath.Base(path), stageLogSuffix)
		if source == "" {
			continue
		}
		if _, ok := m.tails[source]; ok {
			continue
		}
		m.track(source, NewStructuredTail(path, m.jobID, source))
	}
}

func (m *TailManager) track(source string, tail *FileTail) {
	m.tails[source] = tail
	m.order = append(m.order, source)
	m.logger.Info().Str("source", source).Msg("discovered log source")
}
