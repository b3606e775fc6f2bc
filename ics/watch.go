package ics

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/phanxgames/calendar"
)

// Load reads and expands the iCalendar file at path.
func Load(path string, win Window, loc *time.Location, log *slog.Logger) ([]calendar.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ics: open: %w", err)
	}
	defer f.Close()

	items, err := Parse(f, loc, log)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return Expand(items, win, loc, log), nil
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithWatchLogger sets the logger. Default slog.Default().
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithWatchLocation sets the zone events are expanded in. Default time.Local.
func WithWatchLocation(loc *time.Location) WatchOption {
	return func(w *Watcher) {
		if loc != nil {
			w.loc = loc
		}
	}
}

// WithSpan sets how far before and after now occurrences are expanded.
// Default 31 days each way.
func WithSpan(before, after time.Duration) WatchOption {
	return func(w *Watcher) {
		w.before, w.after = before, after
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) WatchOption {
	return func(w *Watcher) {
		if now != nil {
			w.now = now
		}
	}
}

// Watcher re-reads an iCalendar file on a cron schedule and publishes the
// expanded events on Updates. Only the newest snapshot is kept when the
// consumer falls behind.
type Watcher struct {
	path   string
	log    *slog.Logger
	loc    *time.Location
	before time.Duration
	after  time.Duration
	now    func() time.Time

	cron    *cron.Cron
	updates chan []calendar.Event

	mu      sync.Mutex
	modTime time.Time
}

// NewWatcher creates a watcher for path refreshed on spec, a standard five
// field cron expression or a descriptor such as "@every 5m".
func NewWatcher(path, spec string, opts ...WatchOption) (*Watcher, error) {
	w := &Watcher{
		path:    path,
		log:     slog.Default(),
		loc:     time.Local,
		before:  31 * 24 * time.Hour,
		after:   31 * 24 * time.Hour,
		now:     time.Now,
		updates: make(chan []calendar.Event, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("ics: refresh schedule %q: %w", spec, err)
	}
	w.cron = cron.New(cron.WithLocation(w.loc))
	w.cron.Schedule(sched, cron.FuncJob(func() {
		if _, err := w.refresh(false); err != nil {
			w.log.Error("ics: refresh failed", "path", w.path, "error", err)
		}
	}))
	return w, nil
}

// Updates delivers event snapshots.
func (w *Watcher) Updates() <-chan []calendar.Event { return w.updates }

// Window returns the expansion window around the current time.
func (w *Watcher) Window() Window {
	now := w.now().In(w.loc)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.loc)
	return Window{From: day.Add(-w.before), To: day.Add(w.after)}
}

// Reload reads the file now and publishes the result even when the file is
// unchanged.
func (w *Watcher) Reload() ([]calendar.Event, error) {
	return w.refresh(true)
}

// refresh reloads the file when forced or when its modification time
// changed, and publishes the events.
func (w *Watcher) refresh(force bool) ([]calendar.Event, error) {
	st, err := os.Stat(w.path)
	if err != nil {
		return nil, fmt.Errorf("ics: stat: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !force && st.ModTime().Equal(w.modTime) {
		return nil, nil
	}

	events, err := Load(w.path, w.Window(), w.loc, w.log)
	if err != nil {
		return nil, err
	}
	w.modTime = st.ModTime()
	w.publish(events)
	w.log.Info("ics: reloaded", "path", w.path, "events", len(events))
	return events, nil
}

// publish replaces any unread snapshot with events.
func (w *Watcher) publish(events []calendar.Event) {
	select {
	case <-w.updates:
	default:
	}
	w.updates <- events
}

// Start begins the refresh schedule.
func (w *Watcher) Start() { w.cron.Start() }

// Stop halts the schedule and waits for a running refresh to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}
