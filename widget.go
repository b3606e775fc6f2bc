package calendar

import "sort"

// Widget is a retained UI element composited over the calendar. Optional
// behavior is expressed through the HitTester, Clicker, Hoverer and Leaver
// interfaces, detected with type assertions.
type Widget interface {
	ID() string
	// Layer orders painting (ascending) and hit testing (descending).
	Layer() int
	// Region returns the owning region id, or "".
	Region() string
	Bounds() Rect
	Render(c Canvas)
}

// HitTester is implemented by widgets that can receive pointer events.
// Widgets without it are never hit.
type HitTester interface {
	HitTest(p Vec2) bool
}

// Clicker is implemented by widgets that react to clicks.
type Clicker interface {
	OnClick(p Vec2)
}

// Hoverer is implemented by widgets that react to the pointer entering.
type Hoverer interface {
	OnHover(p Vec2)
}

// Leaver is implemented by widgets that react to the pointer leaving.
type Leaver interface {
	OnLeave()
}

type widgetEntry struct {
	w   Widget
	seq uint64
}

// WidgetManager owns widgets keyed by id and dispatches pointer events to
// them. At most one widget is hovered at a time.
type WidgetManager struct {
	entries map[string]widgetEntry
	seq     uint64
	hovered string // id of the hovered widget, "" when none
	dirty   bool
}

// NewWidgetManager returns an empty manager.
func NewWidgetManager() *WidgetManager {
	return &WidgetManager{entries: make(map[string]widgetEntry), dirty: true}
}

// Add registers w, replacing any widget with the same id. A replaced widget
// keeps its original insertion position.
func (m *WidgetManager) Add(w Widget) {
	e, ok := m.entries[w.ID()]
	if !ok {
		m.seq++
		e.seq = m.seq
	} else if m.hovered == w.ID() {
		m.hovered = ""
	}
	e.w = w
	m.entries[w.ID()] = e
	m.dirty = true
}

// Remove deletes the widget with the given id. If it was hovered, the hover
// reference is dropped without calling OnLeave.
func (m *WidgetManager) Remove(id string) {
	if _, ok := m.entries[id]; !ok {
		return
	}
	if m.hovered == id {
		m.hovered = ""
	}
	delete(m.entries, id)
	m.dirty = true
}

// Get returns the widget with the given id.
func (m *WidgetManager) Get(id string) (Widget, bool) {
	e, ok := m.entries[id]
	return e.w, ok
}

// Clear removes every widget and forgets the hovered one.
func (m *WidgetManager) Clear() {
	clear(m.entries)
	m.hovered = ""
	m.dirty = true
}

// Len returns the number of widgets.
func (m *WidgetManager) Len() int { return len(m.entries) }

// Hovered returns the hovered widget, or nil.
func (m *WidgetManager) Hovered() Widget {
	if m.hovered == "" {
		return nil
	}
	return m.entries[m.hovered].w
}

// InRegion returns the widgets owned by regionID in paint order.
func (m *WidgetManager) InRegion(regionID string) []Widget {
	var out []Widget
	for _, w := range m.paintOrder() {
		if w.Region() == regionID {
			out = append(out, w)
		}
	}
	return out
}

// paintOrder returns widgets sorted by ascending layer, ties broken by
// insertion order.
func (m *WidgetManager) paintOrder() []Widget {
	entries := make([]widgetEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		li, lj := entries[i].w.Layer(), entries[j].w.Layer()
		if li != lj {
			return li < lj
		}
		return entries[i].seq < entries[j].seq
	})
	out := make([]Widget, len(entries))
	for i, e := range entries {
		out[i] = e.w
	}
	return out
}

// Render paints every widget, lowest layer first.
func (m *WidgetManager) Render(c Canvas) {
	for _, w := range m.paintOrder() {
		w.Render(c)
	}
	m.dirty = false
}

// RenderRegion paints only the widgets owned by regionID.
func (m *WidgetManager) RenderRegion(c Canvas, regionID string) {
	for _, w := range m.InRegion(regionID) {
		w.Render(c)
	}
	m.dirty = false
}

// hitTest returns the topmost widget under p: highest layer first, and among
// equal layers the most recently added.
func (m *WidgetManager) hitTest(p Vec2) Widget {
	order := m.paintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if ht, ok := order[i].(HitTester); ok && ht.HitTest(p) {
			return order[i]
		}
	}
	return nil
}

// HitTest returns the topmost widget under p.
func (m *WidgetManager) HitTest(p Vec2) (Widget, bool) {
	w := m.hitTest(p)
	return w, w != nil
}

// HandleMouseMove updates the hover state for a pointer at p and reports
// whether a widget is under it. When the topmost widget changes, the old one
// gets OnLeave before the new one gets OnHover.
func (m *WidgetManager) HandleMouseMove(p Vec2) bool {
	hit := m.hitTest(p)
	var hitID string
	if hit != nil {
		hitID = hit.ID()
	}
	if hitID != m.hovered {
		if l, ok := m.Hovered().(Leaver); ok {
			l.OnLeave()
		}
		if h, ok := hit.(Hoverer); ok {
			h.OnHover(p)
		}
		m.hovered = hitID
		m.dirty = true
	}
	return hit != nil
}

// HandleClick dispatches a click at p to the topmost widget and reports
// whether any widget was hit. A hit widget without OnClick still consumes
// the click.
func (m *WidgetManager) HandleClick(p Vec2) bool {
	hit := m.hitTest(p)
	if hit == nil {
		return false
	}
	if c, ok := hit.(Clicker); ok {
		c.OnClick(p)
		m.dirty = true
	}
	return true
}

// NeedsRender reports whether anything changed since the last Render.
func (m *WidgetManager) NeedsRender() bool { return m.dirty }

// MarkDirty forces NeedsRender to report true.
func (m *WidgetManager) MarkDirty() { m.dirty = true }
