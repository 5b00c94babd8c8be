package sync

import (
	"context"
	"time"

	"weekly/internal/timekey"
)

// WatchInterval is the default day-rollover poll interval.
const WatchInterval = 30 * time.Second

// Watcher periodically re-derives the current day key and reports changes so
// derived display state can be re-rendered. It never touches the remote
// document and never interferes with in-flight patches.
type Watcher struct {
	// Interval between checks; WatchInterval when zero.
	Interval time.Duration
	// Now supplies calendar snapshots, timekey.Now when nil.
	Now func() timekey.Keys
}

// Run polls until the context is canceled, invoking onChange with a fresh
// snapshot whenever the day key differs from the previous check.
func (w *Watcher) Run(ctx context.Context, onChange func(timekey.Keys)) {
	interval := w.Interval
	if interval <= 0 {
		interval = WatchInterval
	}
	now := w.Now
	if now == nil {
		now = timekey.Now
	}

	last := now().DayKey
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			keys := now()
			if keys.DayKey != last {
				last = keys.DayKey
				onChange(keys)
			}
		}
	}
}
