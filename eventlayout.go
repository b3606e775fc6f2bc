package calendar

import "time"

const (
	// minVisible is the smallest width or height an event rect may have and
	// still be reported.
	minVisible = 2
	// placeholderWidth is the width given to events on axes that have no
	// placement rule.
	placeholderWidth = 100
	emptyMargin      = 0.1
	emptySpan        = 0.8
	crossDayHours    = 24
)

// EventRect is a laid-out event in the render region's local frame.
type EventRect struct {
	X, Y, W, H float64

	EventID string
	Color   Color
	Radius  float64
	Layer   int
	Title   string
	Owner   string
}

// Bounds returns the rect as a Rect.
func (r EventRect) Bounds() Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.W, Height: r.H}
}

// Contains reports whether (x, y) is inside the rect, edges included.
func (r EventRect) Contains(x, y float64) bool {
	return r.Bounds().Contains(x, y)
}

// EventLayout places events on a view's axis pair.
type EventLayout struct {
	theme *Theme
	loc   *time.Location
}

// NewEventLayout returns a layout engine reading hours and weekdays in loc.
// A nil loc means time.Local.
func NewEventLayout(theme *Theme, loc *time.Location) *EventLayout {
	if loc == nil {
		loc = time.Local
	}
	return &EventLayout{theme: theme, loc: loc}
}

// Layout returns one rect per visible event, in input order. Rects narrower
// or shorter than two pixels are left out. Overlapping events are not
// restacked: each rect keeps the event's own layer.
func (l *EventLayout) Layout(events []Event, view *View, extent Size) []EventRect {
	if view == nil {
		return nil
	}
	xs := NewScale(view.X, extent.Width, 0)
	ys := NewScale(view.Y, extent.Height, 0)

	radius := l.theme.Styles(view).EventRadius
	if radius <= 0 {
		radius = fallbackRadius
	}

	rects := make([]EventRect, 0, len(events))
	for _, ev := range events {
		x, w := l.place(view.X, xs, ev, extent.Width, false, view.MinEventHeight)
		y, h := l.place(view.Y, ys, ev, extent.Height, true, view.MinEventHeight)
		if w < minVisible || h < minVisible {
			continue
		}
		rects = append(rects, EventRect{
			X: x, Y: y, W: w, H: h,
			EventID: ev.ID,
			Color:   l.theme.EventColor(ev),
			Radius:  radius,
			Layer:   ev.Layer,
			Title:   ev.Meta.Title,
			Owner:   ev.Owner,
		})
	}
	return rects
}

// place returns the position and size of ev along one axis.
func (l *EventLayout) place(axis Axis, s Scale, ev Event, extent float64, vertical bool, minHeight float64) (float64, float64) {
	start := ev.StartTime(l.loc)

	switch axis.(type) {
	case *TimeHoursAxis:
		ls := s.(*LinearScale)
		h0 := fractionalHour(start)
		h1 := fractionalHour(ev.EndTime(l.loc))
		if ev.CrossDay && h1 <= h0 {
			h1 += crossDayHours
		}
		p0, size := forward(ls.Map(h0), ls.Map(h1))
		if vertical && size < minHeight {
			size = minHeight
		}
		return p0, size

	case *WeeksOfMonthAxis:
		ls := s.(*LinearScale)
		w := float64(weekOfMonth(start))
		return forward(ls.Map(w), ls.Map(w+1))

	case *DaysOfWeekAxis:
		bs := s.(*BandScale)
		p, _ := bs.Map(weekdayKey(start))
		return forward(p, p+bs.Bandwidth())

	case *UsersAxis:
		bs := s.(*BandScale)
		p, _ := bs.Map(ev.Owner)
		return forward(p, p+bs.Bandwidth())

	case *SingleDayAxis:
		ls := s.(*LinearScale)
		return forward(ls.Map(0), ls.Map(1))

	case *EmptyAxis:
		return extent * emptyMargin, extent * emptySpan
	}
	if vertical {
		return 0, minHeight
	}
	return 0, placeholderWidth
}

// forward returns the pixel interval between a and b as a start and a
// non-negative size. Inverted axes map later values to smaller pixels.
func forward(a, b float64) (float64, float64) {
	if b < a {
		return b, a - b
	}
	return a, b - a
}
