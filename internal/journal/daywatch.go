package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/ashureev/matter/internal/notify"
	"github.com/ashureev/matter/internal/progress"
)

// Broadcaster delivers an event to every connected session.
type Broadcaster interface {
	Broadcast(ev notify.Event)
}

// DayWatcher announces calendar date changes so open clients re-run their
// session start.
type DayWatcher struct {
	events   Broadcaster
	loc      *time.Location
	interval time.Duration
	now      func() time.Time
}

// NewDayWatcher creates a watcher that checks the date every interval.
func NewDayWatcher(events Broadcaster, loc *time.Location, interval time.Duration) *DayWatcher {
	if loc == nil {
		loc = time.Local
	}
	return &DayWatcher{events: events, loc: loc, interval: interval, now: time.Now}
}

// Run blocks until ctx is cancelled.
func (w *DayWatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	last := progress.DateKey(w.now(), w.loc)
	slog.Info("Day watcher started", "interval", w.interval, "today", last)

	for {
		select {
		case <-ticker.C:
			last = w.check(last)
		case <-ctx.Done():
			slog.Info("Day watcher shutting down", "reason", ctx.Err())
			return nil
		}
	}
}

func (w *DayWatcher) check(last string) string {
	today := progress.DateKey(w.now(), w.loc)
	if today == last {
		return last
	}
	slog.Info("Calendar day changed", "from", last, "to", today)
	w.events.Broadcast(notify.Event{
		Type:    notify.EventDayChanged,
		Title:   "A New Day",
		Message: "The forest wakes to a new day.",
		Data:    map[string]string{"date": today},
	})
	return today
}
