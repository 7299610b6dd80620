// internal/seq/runner.go
package seq

import (
	"context"
	"time"
)

// pollLoop is the terminal state: a fixed-cadence ticker with no exit
// condition of its own. One cycle at a time, no overlap, no retries.
func (s *Sequencer) pollLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.pollOnce()
		}
	}
}
