package game

import (
	"context"
	"time"
)

// Run drives the simulation from a wall-clock ticker until the context
// is cancelled. The TUI drives Advance itself; Run is for headless use.
func (g *Game) Run(ctx context.Context, tickInterval time.Duration) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			g.AdvanceWall(now.Sub(last))
			last = now
		}
	}
}
