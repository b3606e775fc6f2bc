// Package ics reads iCalendar files into calendar events, expanding
// recurrence rules over a time window, and can re-read a file on a cron
// schedule.
package ics

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Non-standard properties read from a VEVENT.
const (
	propOwner = "X-CALENDAR-OWNER"
	propLayer = "X-CALENDAR-LAYER"
	propColor = "X-CALENDAR-COLOR"
)

// ErrEmpty is returned when the input holds no data.
var ErrEmpty = errors.New("ics: empty input")

// Item is a VEVENT before recurrence expansion.
type Item struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
	AllDay  bool

	Owner string
	Layer int
	Color string
	Tags  []string

	RRule   string
	ExDates []time.Time
}

// Parse reads every VEVENT from r. Date-only and floating times are read in
// loc. Events without a UID or start are skipped with a warning.
func Parse(r io.Reader, loc *time.Location, log *slog.Logger) ([]Item, error) {
	if loc == nil {
		loc = time.Local
	}
	if log == nil {
		log = slog.Default()
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("ics: read: %w", err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, ErrEmpty
	}

	cal, err := ical.ParseCalendar(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("ics: parse: %w", err)
	}

	var items []Item
	for _, ve := range cal.Events() {
		it, err := parseEvent(ve, loc)
		if err != nil {
			log.Warn("ics: skipping event", "error", err)
			continue
		}
		items = append(items, it)
	}
	log.Debug("ics: parsed", "events", len(items))
	return items, nil
}

func parseEvent(ve *ical.VEvent, loc *time.Location) (Item, error) {
	var it Item

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return it, errors.New("missing UID")
	}
	it.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		it.Summary = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return it, fmt.Errorf("%s: missing DTSTART", it.UID)
	}
	it.AllDay = isDateValue(dtStart)

	start, err := propTime(dtStart, loc)
	if err != nil {
		return it, fmt.Errorf("%s: DTSTART: %w", it.UID, err)
	}
	it.Start = start

	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		end, err := propTime(dtEnd, loc)
		if err != nil {
			return it, fmt.Errorf("%s: DTEND: %w", it.UID, err)
		}
		it.End = end
	}
	if !it.End.After(it.Start) {
		if it.AllDay {
			it.End = it.Start.AddDate(0, 0, 1)
		} else {
			it.End = it.Start.Add(time.Hour)
		}
	}

	if p := ve.GetProperty(propOwner); p != nil {
		it.Owner = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(propLayer); p != nil {
		if n, err := strconv.Atoi(strings.TrimSpace(p.Value)); err == nil {
			it.Layer = n
		}
	}
	if p := ve.GetProperty("COLOR"); p != nil {
		it.Color = strings.TrimSpace(p.Value)
	}
	if p := ve.GetProperty(propColor); p != nil {
		it.Color = strings.TrimSpace(p.Value)
	}
	for _, p := range ve.GetProperties("CATEGORIES") {
		for _, tag := range strings.Split(p.Value, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				it.Tags = append(it.Tags, tag)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		it.RRule = p.Value
	}
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			if part = strings.TrimSpace(part); part == "" {
				continue
			}
			if t, err := parseTime(part, tzid(p, loc)); err == nil {
				it.ExDates = append(it.ExDates, t)
			}
		}
	}
	return it, nil
}

func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// tzid returns the zone named by the property's TZID parameter, or loc.
func tzid(p *ical.IANAProperty, loc *time.Location) *time.Location {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if l, err := time.LoadLocation(tzs[0]); err == nil {
			return l
		}
	}
	return loc
}

func propTime(p *ical.IANAProperty, loc *time.Location) (time.Time, error) {
	return parseTime(p.Value, tzid(p, loc))
}

// parseTime reads DATE, floating DATE-TIME and UTC DATE-TIME values.
func parseTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
