package app

import (
	"context"
	"time"

	"github.com/mapgenworks/mapgenctl/internal/logstream"
)

// defaultPollInterval paces the tail poll. Low enough that new lines feel
// live, high enough that idle jobs cost almost nothing.
const defaultPollInterval = 250 * time.Millisecond

// StartPoller launches the background goroutine that discovers and polls
// the job's log sources at a fixed cadence. It is the sole producer on the
// manager's entry channel. It returns immediately; the returned channel is
// closed once the goroutine has fully stopped.
//
// On cancellation the poller runs one final tick before exiting, so lines
// written while the viewer was shutting down still reach the channel.
func StartPoller(ctx context.Context, manager *logstream.TailManager, interval time.Duration) <-chan struct{} {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	done := make(chan struct{})
	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			manager.Tick()
			select {
			case <-ctx.Done():
				manager.Tick()
				return
			case <-ticker.C:
			}
		}
	}()
	return done
}
