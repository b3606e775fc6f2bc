package calendar

import (
	"testing"
	"time"
)

func TestEventTimes(t *testing.T) {
	ev := timedEvent("a", at(9, 30), at(11, 0))
	if ev.Duration() != 90*time.Minute {
		t.Errorf("Duration = %v", ev.Duration())
	}
	if got := ev.StartTime(time.UTC); !got.Equal(at(9, 30)) {
		t.Errorf("StartTime = %v", got)
	}
	if got := fractionalHour(ev.StartTime(time.UTC)); got != 9.5 {
		t.Errorf("fractionalHour = %v, want 9.5", got)
	}
	if got := weekdayKey(at(0, 0)); got != "Wed" {
		t.Errorf("weekdayKey = %q, want Wed", got)
	}
}

func TestWeekOfMonth(t *testing.T) {
	// February 2026 starts on a Sunday.
	tests := []struct {
		day  int
		want int
	}{
		{1, 1}, {7, 1}, {8, 2}, {14, 2}, {15, 3}, {28, 4},
	}
	for _, tt := range tests {
		d := time.Date(2026, 2, tt.day, 12, 0, 0, 0, time.UTC)
		if got := weekOfMonth(d); got != tt.want {
			t.Errorf("weekOfMonth(Feb %d) = %d, want %d", tt.day, got, tt.want)
		}
	}
	// January 2025 starts on a Wednesday: the 4th closes week 1.
	if got := weekOfMonth(time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Errorf("weekOfMonth(Jan 4) = %d, want 1", got)
	}
	if got := weekOfMonth(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)); got != 2 {
		t.Errorf("weekOfMonth(Jan 5) = %d, want 2", got)
	}
}

func TestStateRemoveEvent(t *testing.T) {
	s := &State{
		Events:          []Event{{ID: "a"}, {ID: "b"}},
		SelectedEventID: "a",
		HoveredEventID:  "a",
	}
	if !s.RemoveEvent("a") {
		t.Fatal("RemoveEvent(a) = false")
	}
	if len(s.Events) != 1 || s.Events[0].ID != "b" {
		t.Errorf("Events = %+v", s.Events)
	}
	if s.SelectedEventID != "" || s.HoveredEventID != "" {
		t.Error("selection or hover kept for a removed event")
	}
	if s.RemoveEvent("missing") {
		t.Error("RemoveEvent(missing) = true")
	}
	if _, ok := s.EventByID("b"); !ok {
		t.Error("EventByID(b) failed")
	}
}

func TestNewEventIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewEventID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestThemeLookups(t *testing.T) {
	theme := NewTheme(DefaultConfig())
	if got := theme.UserName("user1"); got != "Alice" {
		t.Errorf("UserName(user1) = %q", got)
	}
	if got := theme.UserName("ghost"); got != "ghost" {
		t.Errorf("UserName(ghost) = %q", got)
	}
	if got := theme.Radius("lg", 1); got != 10 {
		t.Errorf("Radius(lg) = %v", got)
	}
	if got := theme.Spacing("xl", 99); got != 99 {
		t.Errorf("Spacing fallback = %v", got)
	}

	var nilTheme *Theme
	if got := nilTheme.Color("primary", ColorBlack); got != ColorBlack {
		t.Errorf("nil theme Color = %+v", got)
	}
	if got := nilTheme.FontSize("md", 14); got != 14 {
		t.Errorf("nil theme FontSize = %v", got)
	}
}

func TestThemeViewStyles(t *testing.T) {
	cfg := DefaultConfig()
	theme := NewTheme(cfg)
	view := NewView("v", ViewConfig{Styles: &StyleConfig{GridColor: "#000000", EventRadius: 9}})

	s := theme.Styles(view)
	if s.GridColor != "#000000" || s.EventRadius != 9 {
		t.Errorf("overrides not applied: %+v", s)
	}
	if s.LabelColor != cfg.Styles.LabelColor || s.Background != cfg.Styles.Background {
		t.Errorf("base styles lost: %+v", s)
	}
}
