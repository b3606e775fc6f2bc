package calendar

import (
	"testing"
)

// fakeWidget records callbacks for assertions.
type fakeWidget struct {
	id     string
	layer  int
	region string
	bounds Rect
	log    *[]string
}

func (w *fakeWidget) ID() string          { return w.id }
func (w *fakeWidget) Layer() int          { return w.layer }
func (w *fakeWidget) Region() string      { return w.region }
func (w *fakeWidget) Bounds() Rect        { return w.bounds }
func (w *fakeWidget) Render(Canvas)       { w.record("render") }
func (w *fakeWidget) HitTest(p Vec2) bool { return w.bounds.ContainsPoint(p) }
func (w *fakeWidget) OnClick(Vec2)        { w.record("click") }
func (w *fakeWidget) OnHover(Vec2)        { w.record("hover") }
func (w *fakeWidget) OnLeave()            { w.record("leave") }

func (w *fakeWidget) record(what string) {
	if w.log != nil {
		*w.log = append(*w.log, w.id+":"+what)
	}
}

// decoration has no HitTest and is never hit.
type decoration struct {
	id    string
	layer int
}

func (d *decoration) ID() string     { return d.id }
func (d *decoration) Layer() int     { return d.layer }
func (d *decoration) Region() string { return "" }
func (d *decoration) Bounds() Rect   { return Rect{Width: 1000, Height: 1000} }
func (d *decoration) Render(Canvas)  {}

func TestWidgetClickTopmost(t *testing.T) {
	// Layers 5 and 10 both contain (10,10): only layer 10 is clicked.
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "high", layer: 10, bounds: Rect{Width: 50, Height: 50}, log: &log})
	m.Add(&fakeWidget{id: "low", layer: 5, bounds: Rect{Width: 50, Height: 50}, log: &log})

	if !m.HandleClick(Vec2{X: 10, Y: 10}) {
		t.Fatal("HandleClick = false, want true")
	}
	if len(log) != 1 || log[0] != "high:click" {
		t.Errorf("log = %v, want [high:click]", log)
	}
}

func TestWidgetClickMiss(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "a", layer: 1, bounds: Rect{Width: 10, Height: 10}, log: &log})
	m.Add(&decoration{id: "bg", layer: 99})

	if m.HandleClick(Vec2{X: 50, Y: 50}) {
		t.Error("HandleClick on empty space = true")
	}
	if len(log) != 0 {
		t.Errorf("log = %v, want empty", log)
	}
}

func TestWidgetClickAbsorbedWithoutHandler(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "under", layer: 1, bounds: Rect{Width: 100, Height: 100}, log: &log})
	m.Add(NewTextLabel(LabelConfig{ID: "label", X: 0, Y: 0, Text: "status", Layer: 5, Interactive: true}, nil))

	if !m.HandleClick(Vec2{X: 5, Y: 5}) {
		t.Fatal("interactive label should consume the click")
	}
	if len(log) != 0 {
		t.Errorf("click reached the widget below: %v", log)
	}
}

func TestWidgetEqualLayersLastAddedWins(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "first", layer: 3, bounds: Rect{Width: 20, Height: 20}, log: &log})
	m.Add(&fakeWidget{id: "second", layer: 3, bounds: Rect{Width: 20, Height: 20}, log: &log})

	m.HandleClick(Vec2{X: 1, Y: 1})
	if len(log) != 1 || log[0] != "second:click" {
		t.Errorf("log = %v, want [second:click]", log)
	}
}

func TestWidgetHoverTransitions(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "a", layer: 1, bounds: Rect{Width: 10, Height: 10}, log: &log})
	m.Add(&fakeWidget{id: "b", layer: 1, bounds: Rect{X: 20, Width: 10, Height: 10}, log: &log})

	steps := []struct {
		p       Vec2
		wantHit bool
	}{
		{Vec2{X: 5, Y: 5}, true},
		{Vec2{X: 6, Y: 6}, true}, // same target, no events
		{Vec2{X: 25, Y: 5}, true},
		{Vec2{X: 50, Y: 50}, false},
		{Vec2{X: 60, Y: 60}, false},
	}
	for i, s := range steps {
		if got := m.HandleMouseMove(s.p); got != s.wantHit {
			t.Errorf("step %d: HandleMouseMove = %v, want %v", i, got, s.wantHit)
		}
	}

	want := []string{"a:hover", "a:leave", "b:hover", "b:leave"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
	if m.Hovered() != nil {
		t.Errorf("Hovered = %v, want nil", m.Hovered().ID())
	}
}

// valueWidget is a non-pointer widget holding a func field, so its values
// are not comparable.
type valueWidget struct {
	id     string
	bounds Rect
	onHit  func(string)
}

func (w valueWidget) ID() string          { return w.id }
func (w valueWidget) Layer() int          { return 0 }
func (w valueWidget) Region() string      { return "" }
func (w valueWidget) Bounds() Rect        { return w.bounds }
func (w valueWidget) Render(Canvas)       {}
func (w valueWidget) HitTest(p Vec2) bool { return w.bounds.ContainsPoint(p) }
func (w valueWidget) OnHover(Vec2)        { w.onHit(w.id + ":hover") }
func (w valueWidget) OnLeave()            { w.onHit(w.id + ":leave") }

func TestWidgetHoverValueWidgets(t *testing.T) {
	var log []string
	record := func(s string) { log = append(log, s) }

	m := NewWidgetManager()
	m.Add(valueWidget{id: "a", bounds: Rect{Width: 10, Height: 10}, onHit: record})
	m.Add(valueWidget{id: "b", bounds: Rect{X: 20, Width: 10, Height: 10}, onHit: record})

	m.HandleMouseMove(Vec2{X: 5, Y: 5})
	m.HandleMouseMove(Vec2{X: 6, Y: 6})
	m.HandleMouseMove(Vec2{X: 25, Y: 5})
	if h := m.Hovered(); h == nil || h.ID() != "b" {
		t.Fatalf("Hovered = %v, want b", h)
	}

	// Replacing and removing the hovered widget drops the hover.
	m.Add(valueWidget{id: "b", bounds: Rect{X: 20, Width: 10, Height: 10}, onHit: record})
	if m.Hovered() != nil {
		t.Error("replaced widget still hovered")
	}
	m.HandleMouseMove(Vec2{X: 25, Y: 5})
	m.Remove("b")
	if m.Hovered() != nil {
		t.Error("removed widget still hovered")
	}
	m.HandleMouseMove(Vec2{X: 50, Y: 50})

	want := []string{"a:hover", "a:leave", "b:hover", "b:hover"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("log[%d] = %q, want %q", i, log[i], want[i])
		}
	}
}

func TestWidgetRemoveHovered(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "a", layer: 1, bounds: Rect{Width: 10, Height: 10}, log: &log})
	m.HandleMouseMove(Vec2{X: 5, Y: 5})

	m.Remove("a")
	if m.Hovered() != nil {
		t.Error("removed widget still hovered")
	}
	m.HandleMouseMove(Vec2{X: 50, Y: 50})
	for _, e := range log {
		if e == "a:leave" {
			t.Error("OnLeave fired for a removed widget")
		}
	}
	m.Remove("missing")
}

func TestWidgetReplaceKeepsOrder(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "a", layer: 1, log: &log})
	m.Add(&fakeWidget{id: "b", layer: 1, log: &log})
	m.Add(&fakeWidget{id: "a", layer: 1, log: &log})

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	m.Render(newRecordingCanvas(10, 10))
	want := []string{"a:render", "b:render"}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("render order = %v, want %v", log, want)
			break
		}
	}
}

func TestWidgetRenderOrderAndRegion(t *testing.T) {
	var log []string
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "top", layer: 9, region: "header", log: &log})
	m.Add(&fakeWidget{id: "bottom", layer: 1, region: "header", log: &log})
	m.Add(&fakeWidget{id: "footer", layer: 5, region: "footer", log: &log})

	if !m.NeedsRender() {
		t.Error("NeedsRender after Add = false")
	}
	m.Render(newRecordingCanvas(10, 10))
	if m.NeedsRender() {
		t.Error("NeedsRender after Render = true")
	}
	want := []string{"bottom:render", "footer:render", "top:render"}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("render order = %v, want %v", log, want)
		}
	}

	log = log[:0]
	m.RenderRegion(newRecordingCanvas(10, 10), "header")
	if len(log) != 2 || log[0] != "bottom:render" || log[1] != "top:render" {
		t.Errorf("RenderRegion(header) = %v", log)
	}

	if got := m.InRegion("footer"); len(got) != 1 || got[0].ID() != "footer" {
		t.Errorf("InRegion(footer) = %v", got)
	}
	m.MarkDirty()
	if !m.NeedsRender() {
		t.Error("MarkDirty did not set NeedsRender")
	}
}

func TestWidgetGetClear(t *testing.T) {
	m := NewWidgetManager()
	m.Add(&fakeWidget{id: "a", layer: 1, bounds: Rect{Width: 10, Height: 10}})
	if w, ok := m.Get("a"); !ok || w.ID() != "a" {
		t.Errorf("Get(a) = %v, %v", w, ok)
	}
	if w, ok := m.HitTest(Vec2{X: 1, Y: 1}); !ok || w.ID() != "a" {
		t.Errorf("HitTest = %v, %v", w, ok)
	}
	m.HandleMouseMove(Vec2{X: 1, Y: 1})
	m.Clear()
	if m.Len() != 0 || m.Hovered() != nil {
		t.Errorf("after Clear: Len=%d Hovered=%v", m.Len(), m.Hovered())
	}
	if _, ok := m.Get("a"); ok {
		t.Error("Get after Clear succeeded")
	}
}
