package calendar

import (
	"time"

	"github.com/google/uuid"
)

// Event is a single calendar entry as supplied by the host. The calendar only
// reads events; it never mutates or stores them between calls.
type Event struct {
	ID string
	// Start and End are epoch milliseconds. End > Start unless CrossDay is set.
	Start int64
	End   int64

	Owner    string // owning user id, used by the users axis
	Layer    int    // stacking layer copied to the laid-out rect
	CrossDay bool   // event crosses midnight; End may precede Start in clock time
	AllDay   bool

	Meta Metadata
}

// Metadata is the free-form payload carried by an event.
type Metadata struct {
	Title string
	Color string
	Tags  []string
}

// NewEventID returns a fresh random event identifier.
func NewEventID() string {
	return uuid.NewString()
}

// StartTime returns the start instant in loc. A nil loc means time.Local.
func (e Event) StartTime(loc *time.Location) time.Time {
	return millisIn(e.Start, loc)
}

// EndTime returns the end instant in loc. A nil loc means time.Local.
func (e Event) EndTime(loc *time.Location) time.Time {
	return millisIn(e.End, loc)
}

// Duration returns End - Start.
func (e Event) Duration() time.Duration {
	return time.Duration(e.End-e.Start) * time.Millisecond
}

// Millis converts t to epoch milliseconds.
func Millis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisIn(ms int64, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.UnixMilli(ms).In(loc)
}

// fractionalHour returns h + m/60 for t.
func fractionalHour(t time.Time) float64 {
	return float64(t.Hour()) + float64(t.Minute())/60
}

// weekdayKey returns the three-letter weekday used as a days-of-week domain
// key ("Sun" ... "Sat").
func weekdayKey(t time.Time) string {
	return t.Weekday().String()[:3]
}

// weekOfMonth returns the 1-based, Sunday-first week row of t within its month.
func weekOfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return (t.Day()+int(first.Weekday())-1)/7 + 1
}

// State is the per-session state owned by the host and passed by reference
// into calendar calls. The calendar writes only the selection and hover ids.
type State struct {
	Events          []Event
	SelectedEventID string
	HoveredEventID  string
	Date            time.Time
}

// EventByID returns the event with the given id.
func (s *State) EventByID(id string) (Event, bool) {
	for _, ev := range s.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// RemoveEvent deletes the event with the given id and clears any selection
// or hover that pointed at it. It reports whether an event was removed.
func (s *State) RemoveEvent(id string) bool {
	for i, ev := range s.Events {
		if ev.ID != id {
			continue
		}
		s.Events = append(s.Events[:i:i], s.Events[i+1:]...)
		if s.SelectedEventID == id {
			s.SelectedEventID = ""
		}
		if s.HoveredEventID == id {
			s.HoveredEventID = ""
		}
		return true
	}
	return false
}
