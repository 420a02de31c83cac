package daemon

import (
	"context"
	"time"
)

// TickInterval is how often the ticker asks the dispatcher to check deadlines.
const TickInterval = time.Second

// Ticker emits Tick events at a fixed cadence.
type Ticker struct {
	Interval time.Duration
}

// Run sends a Tick immediately and then once per interval until ctx is done.
// Sends block when the queue is full; ticks are never dropped.
func (t Ticker) Run(ctx context.Context, events chan<- Event) error {
	interval := t.Interval
	if interval <= 0 {
		interval = TickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case events <- Tick{}:
		case <-ctx.Done():
			return nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil
		}
	}
}
