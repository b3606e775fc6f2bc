package ics

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/phanxgames/calendar"
)

const maxOccurrences = 5000

// Window is the time range occurrences are expanded over.
type Window struct {
	From, To time.Time
}

// overlaps reports whether [start, end) overlaps the window.
func (w Window) overlaps(start, end time.Time) bool {
	return start.Before(w.To) && end.After(w.From)
}

// Expand converts items into calendar events, expanding recurring items
// within win. Times are converted to loc. Occurrences of a recurring item
// get the id "UID/unix-start"; single items keep their UID. The result is
// sorted by start time.
func Expand(items []Item, win Window, loc *time.Location, log *slog.Logger) []calendar.Event {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}

	var out []calendar.Event
	for _, it := range items {
		if it.RRule == "" {
			if win.overlaps(it.Start, it.End) {
				out = append(out, toEvent(it, it.UID, it.Start, it.End, loc))
			}
			continue
		}
		occ, err := occurrences(it, win)
		if err != nil {
			log.Warn("ics: bad recurrence rule", "uid", it.UID, "rrule", it.RRule, "error", err)
			continue
		}
		if len(occ) > maxOccurrences {
			log.Warn("ics: occurrences truncated", "uid", it.UID, "cap", maxOccurrences)
			occ = occ[:maxOccurrences]
		}
		dur := it.End.Sub(it.Start)
		for _, s := range occ {
			id := fmt.Sprintf("%s/%d", it.UID, s.Unix())
			out = append(out, toEvent(it, id, s, s.Add(dur), loc))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// occurrences returns the recurrence starts of it that overlap win, without
// the EXDATEs.
func occurrences(it Item, win Window) ([]time.Time, error) {
	r, err := rrule.StrToRRule(it.RRule)
	if err != nil {
		return nil, err
	}
	r.DTStart(it.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range it.ExDates {
		set.ExDate(ex.In(it.Start.Location()))
	}

	// An occurrence starting before the window can still reach into it.
	dur := it.End.Sub(it.Start)
	from := win.From.Add(-dur).In(it.Start.Location())
	to := win.To.In(it.Start.Location())

	var out []time.Time
	for _, s := range set.Between(from, to, true) {
		if win.overlaps(s, s.Add(dur)) {
			out = append(out, s)
		}
	}
	return out, nil
}

func toEvent(it Item, id string, start, end time.Time, loc *time.Location) calendar.Event {
	start, end = start.In(loc), end.In(loc)
	ev := calendar.Event{
		ID:     id,
		Start:  calendar.Millis(start),
		End:    calendar.Millis(end),
		Owner:  it.Owner,
		Layer:  it.Layer,
		AllDay: it.AllDay,
		Meta: calendar.Metadata{
			Title: it.Summary,
			Color: it.Color,
			Tags:  append([]string(nil), it.Tags...),
		},
	}
	if !it.AllDay {
		sy, sm, sd := start.Date()
		ey, em, ed := end.Add(-time.Nanosecond).Date()
		ev.CrossDay = sy != ey || sm != em || sd != ed
	}
	return ev
}
