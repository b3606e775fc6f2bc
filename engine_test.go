package calendar

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// gridConfig has a users x hours view where each hour is 10px tall on a
// 200x240 area, and a week view whose bands are 100px wide on 700px.
func gridConfig() *Config {
	return &Config{
		DefaultView: "grid",
		Views: map[string]ViewConfig{
			"grid": {
				XAxis: AxisConfig{Type: "users", Domain: []any{"a", "b"}, Range: []float64{0, 1}, Grid: true},
				YAxis: AxisConfig{Type: "time-hours", Domain: []any{0, 24}, Range: []float64{0, 1}, Format: "%v:00", GridInterval: 6, Grid: true},
			},
			"week": {
				XAxis: AxisConfig{Type: "days-of-week", Range: []float64{0, 1}},
				YAxis: AxisConfig{Type: "time-hours", Domain: []any{0, 24}, Range: []float64{0, 1}},
			},
			"blank": {
				XAxis: AxisConfig{Type: "empty"},
				YAxis: AxisConfig{Type: "empty"},
			},
		},
		Styles: StyleConfig{EventShadow: "none"},
	}
}

func gridEvents() []Event {
	e1 := timedEvent("e1", at(9, 0), at(12, 0))
	e1.Owner = "a"
	e1.Meta.Title = "Standup"
	e2 := timedEvent("e2", at(10, 0), at(12, 0))
	e2.Owner = "b"
	e2.Layer = 1
	return []Event{e1, e2}
}

func newGridCalendar(t *testing.T, w, h float64) (*Calendar, *recordingCanvas) {
	t.Helper()
	c := newRecordingCanvas(w, h)
	cal, err := NewCalendar(c, gridConfig(), WithLogger(quietLogger()), WithLocation(time.UTC))
	if err != nil {
		t.Fatalf("NewCalendar: %v", err)
	}
	cal.SetDate(at(0, 0))
	return cal, c
}

func TestNewCalendarErrors(t *testing.T) {
	if _, err := NewCalendar(nil, gridConfig()); !errors.Is(err, ErrNoSurface) {
		t.Errorf("nil surface err = %v, want ErrNoSurface", err)
	}
	c := newRecordingCanvas(10, 10)
	if _, err := NewCalendar(c, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil config err = %v, want ErrInvalidConfig", err)
	}
	cfg := gridConfig()
	cfg.DefaultView = "missing"
	if _, err := NewCalendar(c, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("missing default view err = %v, want ErrInvalidConfig", err)
	}
}

func TestCalendarSetView(t *testing.T) {
	cal, _ := newGridCalendar(t, 200, 240)

	cal.SetView("week")
	if cal.View().Key != "week" {
		t.Errorf("View = %q, want week", cal.View().Key)
	}
	cal.SetView("nope")
	if cal.View().Key != "grid" {
		t.Errorf("unknown view fell back to %q, want grid", cal.View().Key)
	}
}

func TestCalendarLayoutGrid(t *testing.T) {
	cal, _ := newGridCalendar(t, 200, 240)
	rects := cal.Layout(gridEvents())
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2", len(rects))
	}
	want := []Rect{
		{X: 5, Y: 90, Width: 90, Height: 30},
		{X: 105, Y: 100, Width: 90, Height: 20},
	}
	for i, r := range rects {
		b := r.Bounds()
		if !approxEqual(b.X, want[i].X) || !approxEqual(b.Y, want[i].Y) ||
			!approxEqual(b.Width, want[i].Width) || !approxEqual(b.Height, want[i].Height) {
			t.Errorf("rect %d = %+v, want %+v", i, b, want[i])
		}
	}
}

func TestCalendarRenderBounds(t *testing.T) {
	cal, c := newGridCalendar(t, 400, 400)
	if got := cal.RenderBounds(); got != (Rect{Width: 400, Height: 400}) {
		t.Errorf("default RenderBounds = %+v", got)
	}

	cal.SetRenderBounds(10, 20, 200, 240)
	cal.Render(gridEvents())

	if len(c.clips) != 0 {
		t.Errorf("clip stack not balanced: %v", c.clips)
	}
	if c.ops[0].kind != "fillRect" || c.ops[0].rect != (Rect{X: 10, Y: 20, Width: 200, Height: 240}) {
		t.Errorf("first op = %+v, want background fill of the bounds", c.ops[0])
	}
	if n := c.count("fillRoundRect"); n != 2 {
		t.Errorf("event fills = %d, want 2", n)
	}
	var first Rect
	for _, op := range c.ops {
		if op.kind == "fillRoundRect" {
			first = op.rect
			break
		}
	}
	if !approxEqual(first.X, 15) || !approxEqual(first.Y, 110) {
		t.Errorf("event drawn at (%v, %v), want (15, 110)", first.X, first.Y)
	}

	// e1 is tall enough for its title; e2 is not.
	if !c.hasText("Standup") {
		t.Error("title of e1 not drawn")
	}
	if c.hasText("Event") {
		t.Error("title drawn for a rect under 20px")
	}
	for _, label := range []string{"a", "b", "0:00", "6:00", "24:00"} {
		if !c.hasText(label) {
			t.Errorf("axis label %q not drawn", label)
		}
	}
	// 2 user bands plus 5 hour lines.
	if n := c.count("line"); n != 7 {
		t.Errorf("grid lines = %d, want 7", n)
	}

	cal.ClearRenderBounds()
	if got := cal.RenderBounds(); got.X != 0 || got.Width != 400 {
		t.Errorf("RenderBounds after clear = %+v", got)
	}
}

func TestCalendarRenderSelection(t *testing.T) {
	cal, c := newGridCalendar(t, 200, 240)
	cal.Select("e2")
	cal.Render(gridEvents())
	if n := c.count("strokeRoundRect"); n != 1 {
		t.Errorf("selection outlines = %d, want 1", n)
	}
}

func TestCalendarRenderUsersLabels(t *testing.T) {
	cfg := gridConfig()
	cfg.Users = []UserConfig{{ID: "a", Name: "Alice"}}
	c := newRecordingCanvas(200, 240)
	cal, err := NewCalendar(c, cfg, WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	cal.Render(nil)
	if !c.hasText("Alice") || !c.hasText("b") {
		t.Errorf("user labels = %v", c.texts())
	}
}

func TestCalendarHandleMouseMove(t *testing.T) {
	cal, _ := newGridCalendar(t, 200, 240)
	state := &State{Events: gridEvents()}

	if !cal.HandleMouseMove(50, 100, state) {
		t.Error("entering e1 should report a change")
	}
	if state.HoveredEventID != "e1" || cal.Hovered() != "e1" {
		t.Errorf("hovered = %q/%q, want e1", state.HoveredEventID, cal.Hovered())
	}
	if cal.HandleMouseMove(52, 101, state) {
		t.Error("moving within e1 should not report a change")
	}
	if !cal.HandleMouseMove(50, 200, state) {
		t.Error("leaving e1 should report a change")
	}
	if state.HoveredEventID != "" {
		t.Errorf("hovered = %q after leaving", state.HoveredEventID)
	}

	cal.HandleMouseMove(150, 110, state)
	cal.ClearHover(state)
	if state.HoveredEventID != "" || cal.Hovered() != "" {
		t.Error("ClearHover kept the hover")
	}
}

func TestCalendarHandleClick(t *testing.T) {
	cal, _ := newGridCalendar(t, 200, 240)
	events := gridEvents()
	top := timedEvent("top", at(9, 0), at(10, 0))
	top.Owner = "a"
	top.Layer = 2
	state := &State{Events: append(events, top)}

	tests := []struct {
		name   string
		x, y   float64
		wantID string
		wantOK bool
	}{
		{"e2", 150, 105, "e2", true},
		{"topmost of overlap", 50, 95, "top", true},
		{"e1 below top", 50, 115, "e1", true},
		{"empty", 50, 200, "", false},
		{"band padding", 100, 105, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := cal.HandleClick(tt.x, tt.y, state)
			if id != tt.wantID || ok != tt.wantOK {
				t.Errorf("HandleClick = (%q, %v), want (%q, %v)", id, ok, tt.wantID, tt.wantOK)
			}
			if state.SelectedEventID != tt.wantID {
				t.Errorf("SelectedEventID = %q, want %q", state.SelectedEventID, tt.wantID)
			}
		})
	}
}

func TestCalendarSlotAt(t *testing.T) {
	cal, _ := newGridCalendar(t, 200, 240)

	slot, ok := cal.SlotAt(150, 97)
	if !ok {
		t.Fatal("SlotAt failed on a time-hours view")
	}
	if !slot.Start.Equal(at(9, 45)) {
		t.Errorf("Start = %v, want 09:45 snapped", slot.Start)
	}
	if slot.Owner != "b" {
		t.Errorf("Owner = %q, want b", slot.Owner)
	}

	cal.SetView("week")
	cal.SetRenderBounds(0, 0, 700, 240)
	tests := []struct {
		x    float64
		want time.Time
	}{
		{350, at(14, 0)},                  // Wed, the reference day
		{50, at(14, 0).AddDate(0, 0, -3)}, // Sun
		{650, at(14, 0).AddDate(0, 0, 3)}, // Sat
	}
	for _, tt := range tests {
		slot, ok := cal.SlotAt(tt.x, 140)
		if !ok || !slot.Start.Equal(tt.want) {
			t.Errorf("SlotAt(%v) = %v %v, want %v", tt.x, slot.Start, ok, tt.want)
		}
	}

	cal.SetView("blank")
	if _, ok := cal.SlotAt(10, 10); ok {
		t.Error("SlotAt succeeded without a time-hours axis")
	}
}

func TestParseShadow(t *testing.T) {
	tests := []struct {
		in   string
		want shadowSpec
	}{
		{"", shadowSpec{}},
		{"none", shadowSpec{}},
		{"0 2px 6px rgba(0,0,0,0.2)", shadowSpec{dx: 0, dy: 2, alpha: 0.2}},
		{"3px 4px", shadowSpec{dx: 3, dy: 4, alpha: 0.2}},
		{"inset", shadowSpec{dy: 2, alpha: 0.2}},
	}
	for _, tt := range tests {
		if got := parseShadow(tt.in); got != tt.want {
			t.Errorf("parseShadow(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestCalendarRenderShadow(t *testing.T) {
	cfg := gridConfig()
	cfg.Styles.EventShadow = "0 2px"
	c := newRecordingCanvas(200, 240)
	cal, err := NewCalendar(c, cfg, WithLocation(time.UTC), WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}
	// One shadow plus one body per event.
	cal.Render(gridEvents())
	if n := c.count("fillRoundRect"); n != 4 {
		t.Errorf("fills = %d, want 4", n)
	}
}
