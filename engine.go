package calendar

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	labelInset       = 45 // x of right-aligned y-axis labels within the render area
	xLabelRise       = 25 // distance of x-axis labels above the bottom edge
	eventTextPadding = 4
	hoverLighten     = 20
	snapMinutes      = 15
)

// Option configures a Calendar.
type Option func(*Calendar)

// WithLogger sets the logger. Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Calendar) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMetrics records render and layout metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(c *Calendar) { c.metrics = m }
}

// WithLocation sets the zone used to read hours and weekdays from events.
// Default time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Calendar) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithTheme overrides the theme derived from the config.
func WithTheme(t *Theme) Option {
	return func(c *Calendar) {
		if t != nil {
			c.theme = t
		}
	}
}

// Calendar draws the active view of a config onto a Canvas and resolves
// pointer events against the laid-out events.
type Calendar struct {
	surface Canvas
	cfg     *Config
	theme   *Theme
	log     *slog.Logger
	metrics *Metrics
	loc     *time.Location

	views    map[string]*View
	view     *View
	layout   *EventLayout
	size     Size
	bounds   *Rect
	date     time.Time
	hovered  string
	selected string
}

// NewCalendar creates a calendar drawing onto surface. It fails when surface
// is nil or the config's default view does not exist.
func NewCalendar(surface Canvas, cfg *Config, opts ...Option) (*Calendar, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if _, ok := cfg.Views[cfg.DefaultView]; !ok {
		return nil, fmt.Errorf("%w: default view %q is not defined", ErrInvalidConfig, cfg.DefaultView)
	}

	c := &Calendar{
		surface: surface,
		cfg:     cfg,
		log:     slog.Default(),
		loc:     time.Local,
		views:   make(map[string]*View, len(cfg.Views)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.theme == nil {
		c.theme = NewTheme(cfg)
	}
	for key, v := range cfg.Views {
		c.views[key] = NewView(key, v)
	}
	c.view = c.views[cfg.DefaultView]
	c.layout = NewEventLayout(c.theme, c.loc)
	c.date = time.Now().In(c.loc)
	c.size = surface.Size()
	return c, nil
}

// SetRenderBounds confines drawing and layout to the given rectangle of the
// surface.
func (c *Calendar) SetRenderBounds(x, y, w, h float64) {
	c.bounds = &Rect{X: x, Y: y, Width: w, Height: h}
}

// ClearRenderBounds makes the calendar use the whole surface again.
func (c *Calendar) ClearRenderBounds() { c.bounds = nil }

// RenderBounds returns the area the calendar draws into.
func (c *Calendar) RenderBounds() Rect {
	if c.bounds != nil {
		return *c.bounds
	}
	return Rect{Width: c.size.Width, Height: c.size.Height}
}

// HandleResize re-reads the surface size.
func (c *Calendar) HandleResize() {
	c.size = c.surface.Size()
}

// SetView switches the active view. Unknown keys log a warning and select
// the default view.
func (c *Calendar) SetView(key string) {
	v, ok := c.views[key]
	if !ok {
		c.log.Warn("calendar: view not found, using default", "view", key, "default", c.cfg.DefaultView)
		v = c.views[c.cfg.DefaultView]
	}
	c.view = v
	c.hovered = ""
	c.metrics.viewSwitched(v.Key)
}

// View returns the active view.
func (c *Calendar) View() *View { return c.view }

// Theme returns the theme used for drawing.
func (c *Calendar) Theme() *Theme { return c.theme }

// Location returns the zone events are read in.
func (c *Calendar) Location() *time.Location { return c.loc }

// SetDate sets the reference date shown by single-day views and used when
// converting a point to a time slot.
func (c *Calendar) SetDate(t time.Time) { c.date = t.In(c.loc) }

// Date returns the reference date.
func (c *Calendar) Date() time.Time { return c.date }

// Select marks id as the selected event for drawing. Empty clears it.
func (c *Calendar) Select(id string) { c.selected = id }

// Hovered returns the id of the event under the pointer, or "".
func (c *Calendar) Hovered() string { return c.hovered }

// Layout lays out events for the active view in the render area's local
// frame.
func (c *Calendar) Layout(events []Event) []EventRect {
	b := c.RenderBounds()
	return c.layout.Layout(events, c.view, Size{Width: b.Width, Height: b.Height})
}

// Render draws the background, grid, events and axis labels.
func (c *Calendar) Render(events []Event) {
	start := time.Now()
	dims := c.RenderBounds()
	styles := c.theme.Styles(c.view)

	if c.bounds != nil {
		c.surface.PushClip(dims)
		defer c.surface.PopClip()
	}

	c.surface.FillRect(dims, colorOr(styles.Background, ColorWhite))
	c.drawGrid(dims, styles)

	rects := c.Layout(events)
	c.metrics.observeLayout(len(events), len(rects))
	c.drawEvents(dims, rects, styles)
	c.drawLabels(dims, styles)

	c.metrics.observeRender(time.Since(start))
}

// drawOrder returns rects sorted by ascending layer, keeping input order for
// equal layers.
func drawOrder(rects []EventRect) []EventRect {
	out := make([]EventRect, len(rects))
	copy(out, rects)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Layer < out[j].Layer })
	return out
}

func (c *Calendar) drawGrid(dims Rect, styles StyleConfig) {
	col := colorOr(styles.GridColor, Color{R: 0xe0 / 255.0, G: 0xe0 / 255.0, B: 0xe0 / 255.0, A: 1})
	width := styles.GridWidth
	if width <= 0 {
		width = 1
	}

	x, y := c.view.X, c.view.Y
	if x.Common().Grid {
		for _, px := range gridLines(x, NewScale(x, dims.Width, dims.X)) {
			c.surface.StrokeLine(px, dims.Y, px, dims.Y+dims.Height, width, col)
		}
	}
	if y.Common().Grid {
		for _, py := range gridLines(y, NewScale(y, dims.Height, dims.Y)) {
			c.surface.StrokeLine(dims.X, py, dims.X+dims.Width, py, width, col)
		}
	}
}

// gridLines returns the pixel positions of an axis' grid lines: band starts
// for banded axes and ticks for continuous ones. Single-day and empty axes
// have none.
func gridLines(axis Axis, s Scale) []float64 {
	var out []float64
	switch sc := s.(type) {
	case *BandScale:
		for _, k := range sc.Keys() {
			px, _ := sc.Map(k)
			out = append(out, px)
		}
	case *LinearScale:
		switch axis.(type) {
		case *SingleDayAxis, *EmptyAxis:
			return nil
		}
		for _, v := range sc.Ticks(axis.Common().GridInterval) {
			out = append(out, sc.Map(v))
		}
	}
	return out
}

func (c *Calendar) drawEvents(dims Rect, rects []EventRect, styles StyleConfig) {
	shadow := parseShadow(styles.EventShadow)
	fontSize := styles.LabelFontSize
	if fontSize <= 0 {
		fontSize = 12
	}

	for _, r := range drawOrder(rects) {
		g := r.Bounds().Translate(dims.X, dims.Y)
		hovered := r.EventID == c.hovered

		sh := shadow
		if hovered {
			sh.alpha = 0.3
			sh.dy *= 1.5
		}
		if sh.alpha > 0 {
			c.surface.FillRoundRect(g.Translate(sh.dx, sh.dy), r.Radius, ColorBlack.WithAlpha(sh.alpha))
		}

		fill := r.Color
		if hovered {
			fill = fill.Lighten(hoverLighten)
		}
		c.surface.FillRoundRect(g, r.Radius, fill)
		if r.EventID == c.selected && c.selected != "" {
			c.surface.StrokeRoundRect(g, r.Radius, 2, r.Color.Darken(0.4))
		}

		if r.W > 30 && r.H > 20 {
			title := r.Title
			if title == "" {
				title = "Event"
			}
			c.surface.DrawText(title, g.X+eventTextPadding, g.Y+eventTextPadding, TextStyle{
				Size:     fontSize,
				Color:    ColorWhite,
				MaxWidth: r.W - 2*eventTextPadding,
			})
		}
	}
}

func (c *Calendar) drawLabels(dims Rect, styles StyleConfig) {
	style := TextStyle{
		Size:  styles.LabelFontSize,
		Color: colorOr(styles.LabelColor, Color{R: 0x66 / 255.0, G: 0x66 / 255.0, B: 0x66 / 255.0, A: 1}),
	}
	if style.Size <= 0 {
		style.Size = 12
	}

	x := c.view.X
	xs := NewScale(x, dims.Width, dims.X)
	switch a := x.(type) {
	case *EmptyAxis:
	case *SingleDayAxis:
		lo, hi := xs.Span()
		label := a.Label
		if label == "" {
			label = "Today"
		}
		st := style
		st.Align = TextAlignCenter
		c.surface.DrawText(fmt.Sprintf("%d/%d %s", int(c.date.Month()), c.date.Day(), label), (lo+hi)/2, dims.Y+10, st)
	default:
		st := style
		st.Align = TextAlignCenter
		ly := dims.Y + dims.Height - xLabelRise
		for _, t := range c.ticks(x, xs) {
			c.surface.DrawText(t.label, t.center, ly, st)
		}
	}

	y := c.view.Y
	if _, ok := y.(*EmptyAxis); ok {
		return
	}
	st := style
	st.Align = TextAlignRight
	st.Baseline = TextBaselineMiddle
	for _, t := range c.ticks(y, NewScale(y, dims.Height, dims.Y)) {
		c.surface.DrawText(t.label, dims.X+labelInset, t.center, st)
	}
}

type tick struct {
	center float64
	label  string
}

// ticks returns label positions for an axis. Band labels are centered on
// their band; continuous labels sit on their tick.
func (c *Calendar) ticks(axis Axis, s Scale) []tick {
	common := axis.Common()
	var out []tick
	switch sc := s.(type) {
	case *BandScale:
		_, users := axis.(*UsersAxis)
		for _, k := range sc.Keys() {
			px, _ := sc.Map(k)
			label := k
			if users && common.Formatter == nil && common.Format == "" {
				label = c.theme.UserName(k)
			} else {
				label = common.FormatTick(k)
			}
			out = append(out, tick{center: px + sc.Bandwidth()/2, label: label})
		}
	case *LinearScale:
		if _, ok := axis.(*SingleDayAxis); ok {
			return nil
		}
		for _, v := range sc.Ticks(common.GridInterval) {
			out = append(out, tick{center: sc.Map(v), label: common.FormatTick(trimFloat(v))})
		}
	}
	return out
}

// trimFloat returns integral values as int so "%v:00" prints "9:00".
func trimFloat(v float64) any {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return int64(v)
	}
	return v
}

// hit returns the topmost rect containing (x, y) in local coordinates.
func hit(rects []EventRect, x, y float64) (EventRect, bool) {
	order := drawOrder(rects)
	for i := len(order) - 1; i >= 0; i-- {
		if order[i].Contains(x, y) {
			return order[i], true
		}
	}
	return EventRect{}, false
}

// HandleMouseMove updates the hovered event for a pointer at (x, y) in the
// render area's local frame. It reports whether the hovered event changed.
func (c *Calendar) HandleMouseMove(x, y float64, state *State) bool {
	var events []Event
	if state != nil {
		events = state.Events
	}
	id := ""
	if r, ok := hit(c.Layout(events), x, y); ok {
		id = r.EventID
	}
	if state != nil {
		state.HoveredEventID = id
	}
	if id == c.hovered {
		return false
	}
	c.log.Debug("calendar: hover changed", "from", c.hovered, "to", id)
	c.hovered = id
	return true
}

// ClearHover forgets the hovered event, for a pointer that left the render
// area or was taken by a widget.
func (c *Calendar) ClearHover(state *State) {
	if state != nil {
		state.HoveredEventID = ""
	}
	c.hovered = ""
}

// HandleClick selects the event under (x, y) in the render area's local
// frame. Clicking empty space clears the selection.
func (c *Calendar) HandleClick(x, y float64, state *State) (string, bool) {
	var events []Event
	if state != nil {
		events = state.Events
	}
	r, ok := hit(c.Layout(events), x, y)
	if !ok {
		c.log.Debug("calendar: click on empty space", "x", x, "y", y)
		c.selected = ""
		if state != nil {
			state.SelectedEventID = ""
		}
		return "", false
	}
	c.log.Debug("calendar: event selected", "event", r.EventID)
	c.selected = r.EventID
	if state != nil {
		state.SelectedEventID = r.EventID
	}
	return r.EventID, true
}

// Slot is the time and owner under a point of the calendar.
type Slot struct {
	Start time.Time
	Owner string
}

// SlotAt converts a local point to a time slot. The hour comes from a
// time-hours axis, snapped to 15 minutes; the day from a days-of-week axis
// relative to the reference date's week; the owner from a users axis. It
// fails when neither axis is time-hours.
func (c *Calendar) SlotAt(x, y float64) (Slot, bool) {
	b := c.RenderBounds()
	day := time.Date(c.date.Year(), c.date.Month(), c.date.Day(), 0, 0, 0, 0, c.loc)
	var slot Slot
	found := false

	apply := func(axis Axis, s Scale, px float64) {
		switch sc := s.(type) {
		case *LinearScale:
			if _, ok := axis.(*TimeHoursAxis); !ok {
				return
			}
			h := sc.Invert(px)
			mins := math.Round(h*60/snapMinutes) * snapMinutes
			mins = math.Max(0, math.Min(mins, 24*60-snapMinutes))
			slot.Start = slot.Start.Add(time.Duration(mins) * time.Minute)
			found = true
		case *BandScale:
			key, ok := sc.Lookup(px)
			if !ok {
				return
			}
			switch axis.(type) {
			case *UsersAxis:
				slot.Owner = key
			case *DaysOfWeekAxis:
				if wd, ok := parseWeekday(key); ok {
					slot.Start = slot.Start.AddDate(0, 0, int(wd)-int(day.Weekday()))
				}
			}
		}
	}

	slot.Start = day
	apply(c.view.X, NewScale(c.view.X, b.Width, 0), x)
	apply(c.view.Y, NewScale(c.view.Y, b.Height, 0), y)
	return slot, found
}

func parseWeekday(key string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String()[:3], key) {
			return d, true
		}
	}
	return 0, false
}

type shadowSpec struct {
	dx, dy float64
	alpha  float64
}

// parseShadow reads the x and y offsets of a CSS box-shadow such as
// "0 2px 6px rgba(0,0,0,0.2)". Blur is not drawn.
func parseShadow(s string) shadowSpec {
	spec := shadowSpec{dy: 2, alpha: 0.2}
	if s == "" || s == "none" {
		return shadowSpec{}
	}
	fields := strings.Fields(s)
	var nums []float64
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			break
		}
		nums = append(nums, v)
	}
	if len(nums) >= 2 {
		spec.dx, spec.dy = nums[0], nums[1]
	}
	return spec
}
